package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// DBInMemoryKey keeps the whole state in memory, nothing is persisted
	DBInMemoryKey = "DB_IN_MEMORY"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// HTTPListeningPortKey is the port where the HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// TxMaxAttemptsKey is the number of times a store transaction is retried
	// after a write conflict before giving up
	TxMaxAttemptsKey = "TX_MAX_ATTEMPTS"
	// SignatureValidityKey is the max accepted distance between now and the
	// expiry of a signed request
	SignatureValidityKey = "SIGNATURE_VALIDITY"
	// FaucetEnabledKey enables the airdrop endpoint, for test deployments only
	FaucetEnabledKey = "FAUCET_ENABLED"
	// FaucetMaxAmountKey is the max amount credited by a single airdrop
	FaucetMaxAmountKey = "FAUCET_MAX_AMOUNT"
	// WebhookTimeoutKey is the timeout of every webhook request
	WebhookTimeoutKey = "WEBHOOK_TIMEOUT"
	// StatsIntervalKey defines interval for printing basic memory statistics,
	// in seconds. Zero disables it.
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("marketd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("MARKET")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBInMemoryKey, false)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(HTTPListeningPortKey, 9945)
	vip.SetDefault(TxMaxAttemptsKey, 100)
	vip.SetDefault(SignatureValidityKey, 5*time.Minute)
	vip.SetDefault(FaucetEnabledKey, false)
	vip.SetDefault(FaucetMaxAmountKey, 100_000_000)
	vip.SetDefault(WebhookTimeoutKey, 15*time.Second)
	vip.SetDefault(StatsIntervalKey, 0)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the base directory of the daemon databases, empty if
// the state must be kept in memory.
func GetDbDir() string {
	if GetBool(DBInMemoryKey) {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	port := GetInt(HTTPListeningPortKey)
	if port <= 1024 || port > 65535 {
		return fmt.Errorf("%s must be in range (1024, 65535]", HTTPListeningPortKey)
	}

	if GetInt(TxMaxAttemptsKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", TxMaxAttemptsKey)
	}

	if GetDuration(SignatureValidityKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", SignatureValidityKey)
	}

	if GetBool(FaucetEnabledKey) && GetUint64(FaucetMaxAmountKey) == 0 {
		return fmt.Errorf(
			"%s must be greater than zero if faucet is enabled", FaucetMaxAmountKey,
		)
	}

	if GetDuration(WebhookTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", WebhookTimeoutKey)
	}

	if GetInt(StatsIntervalKey) < 0 {
		return fmt.Errorf("%s must not be negative", StatsIntervalKey)
	}

	return nil
}

func initDatadir() error {
	if GetBool(DBInMemoryKey) {
		return nil
	}
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
