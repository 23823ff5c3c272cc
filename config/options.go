package config // import "github.com/libris-io/libris/config"

const (
	defaultLogFile             = "libris.log"
	defaultLogLevel            = "info"
	defaultLogFileMaxSize      = 20
	defaultLogFileMaxBackups   = 3
	defaultLogFileMaxAge       = 28
	defaultLogCompress         = false
	defaultPort                = 8080
	defaultHost                = "0.0.0.0"
	defaultData                = "/var/opt/libris"
	defaultVersion             = "0.1.0"
	defaultWorkerPoolSize      = 2
	defaultMaxUploadSize       = 10
	defaultLoanPeriodDays      = 14
	defaultHighScoreThreshold  = 4.0
	defaultTopReadersLimit     = 3
	defaultDebtorScanInterval  = 24 * 60 // minutes
)

var Opts *Options

// Options holds the runtime configuration. Field tags are mapstructure
// because viper unmarshals through it.
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data (database, uploaded files)
	Data    string `mapstructure:"data"`
	Version string `mapstructure:"version"`
	// WorkerPoolSize is the number of background workers
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// MaxUploadSize is the maximum size of an upload, in MiB
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
	// LoanPeriodDays is the number of days a student may keep a book
	// before counting as a debtor
	LoanPeriodDays int `mapstructure:"loan_period_days"`
	// HighScoreThreshold is the average score above which a student
	// counts as a high scorer
	HighScoreThreshold float64 `mapstructure:"high_score_threshold"`
	// TopReadersLimit is the number of students in the top-readers report
	TopReadersLimit int `mapstructure:"top_readers_limit"`
	// DebtorScanInterval is the interval between debtor scans, in minutes
	DebtorScanInterval int `mapstructure:"debtor_scan_interval"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:            defaultLogFile,
		LogLevel:           defaultLogLevel,
		LogFileMaxSize:     defaultLogFileMaxSize,
		LogFileMaxBackups:  defaultLogFileMaxBackups,
		LogFileMaxAge:      defaultLogFileMaxAge,
		LogCompress:        defaultLogCompress,
		Port:               defaultPort,
		Host:               defaultHost,
		Data:               defaultData,
		Version:            defaultVersion,
		WorkerPoolSize:     defaultWorkerPoolSize,
		MaxUploadSize:      defaultMaxUploadSize,
		LoanPeriodDays:     defaultLoanPeriodDays,
		HighScoreThreshold: defaultHighScoreThreshold,
		TopReadersLimit:    defaultTopReadersLimit,
		DebtorScanInterval: defaultDebtorScanInterval,
	}
	return Opts
}
