package repo

const (
	AppName = "Tally"

	// CfgFileName is the default config name
	CfgFileName = "config.toml"

	genesisCfgFileName = "genesis.toml"

	// defaultRepoRoot is the path to the default config dir location.
	defaultRepoRoot = "~/.tally"

	// rootPathEnvVar is the environment variable used to change the path root.
	rootPathEnvVar = "TALLY_PATH"

	LogsDirName = "logs"

	auditDirName = "audit"

	AuditDBFileName = "notices.db"

	pidFileName = "running.pid"
)

const (
	KVStorageTypeLeveldb = "leveldb"
	KVStorageTypePebble  = "pebble"
	KVStorageTypeRosedb  = "rosedb"
	KVStorageCacheSize   = 16
	KVStorageSync        = true
)

const (
	DefaultTokenName   = "Tally"
	DefaultTokenSymbol = "TLY"
	DefaultDecimals    = uint8(18)

	// DefaultAccountBalance is 1 million tokens at 18 decimals.
	DefaultAccountBalance = "1000000000000000000000000"
)

var (
	// DefaultDeployerAddr is the well-known dev deployer account.
	DefaultDeployerAddr = "0xc7F999b83Af6DF9e67d0a37Ee7e900bF38b3D013"

	// DefaultAccountAddrs are dev accounts seeded with an initial balance.
	DefaultAccountAddrs = []string{
		"0x79a1215469FaB6f9c63c1816b45183AD3624bE34",
		"0x97c8B516D19edBf575D72a172Af7F418BE498C37",
		"0xc0Ff2e0b3189132D815b8eb325bE17285AC898f8",
	}
)
