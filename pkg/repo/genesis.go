package repo

import (
	"os"
	"path"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/tallyledger/tally/pkg/fileutil"
	"github.com/tallyledger/tally/pkg/types"
)

type GenesisConfig struct {
	Token    Token  `mapstructure:"token" toml:"token"`
	Deployer string `mapstructure:"deployer" toml:"deployer"`

	// Accounts and Amounts are parallel lists of initial holders.
	Accounts []string     `mapstructure:"accounts" toml:"accounts"`
	Amounts  []types.U128 `mapstructure:"amounts" toml:"amounts"`
}

type Token struct {
	Name     string `mapstructure:"name" toml:"name"`
	Symbol   string `mapstructure:"symbol" toml:"symbol"`
	Decimals uint8  `mapstructure:"decimals" toml:"decimals"`

	// Icon is an optional URI, empty means unset.
	Icon string `mapstructure:"icon" toml:"icon"`
}

func DefaultGenesisConfig() *GenesisConfig {
	return &GenesisConfig{
		Token: Token{
			Name:     DefaultTokenName,
			Symbol:   DefaultTokenSymbol,
			Decimals: DefaultDecimals,
		},
		Deployer: DefaultDeployerAddr,
		Accounts: DefaultAccountAddrs,
		Amounts: lo.Map(DefaultAccountAddrs, func(_ string, _ int) types.U128 {
			return types.MustU128FromString(DefaultAccountBalance)
		}),
	}
}

func (g *GenesisConfig) Validate() error {
	if !ethcommon.IsHexAddress(g.Deployer) {
		return errors.Errorf("invalid deployer address: %s", g.Deployer)
	}
	invalid := lo.Reject(g.Accounts, func(addr string, _ int) bool {
		return ethcommon.IsHexAddress(addr)
	})
	if len(invalid) != 0 {
		return errors.Errorf("invalid genesis accounts: %v", invalid)
	}
	return nil
}

func LoadGenesisConfig(repoRoot string) (*GenesisConfig, error) {
	genesis, err := func() (*GenesisConfig, error) {
		genesis := DefaultGenesisConfig()
		cfgPath := path.Join(repoRoot, genesisCfgFileName)
		existConfig := fileutil.Exist(cfgPath)
		if !existConfig {
			err := os.MkdirAll(repoRoot, 0755)
			if err != nil {
				return nil, errors.Wrap(err, "failed to build default genesis config")
			}

			if err := writeConfigWithEnv(cfgPath, genesis); err != nil {
				return nil, errors.Wrap(err, "failed to build default genesis config")
			}
		} else {
			if err := readConfigFromFile(cfgPath, genesis); err != nil {
				return nil, err
			}
		}

		return genesis, nil
	}()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load genesis config")
	}
	if err := genesis.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to validate genesis config")
	}
	return genesis, nil
}
