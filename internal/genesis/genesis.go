package genesis

import (
	"github.com/pkg/errors"

	"github.com/tallyledger/tally/internal/host"
	"github.com/tallyledger/tally/internal/token"
	"github.com/tallyledger/tally/pkg/repo"
)

const genesisConfigKey = "genesis_cfg"

// Initialize runs the one-time token initialization as the deployer and
// records the genesis config the ledger was seeded from.
func Initialize(genesis *repo.GenesisConfig, env *host.LocalEnv, ft *token.FToken) error {
	config, err := token.GenerateConfig(genesis)
	if err != nil {
		return err
	}

	env.SetCaller(env.Deployer())
	if err := ft.Initialize(config); err != nil {
		return errors.Wrap(err, "failed to initialize token")
	}

	if err := host.NewStateSlot[*repo.GenesisConfig](env, genesisConfigKey).Put(genesis); err != nil {
		return errors.Wrap(err, "failed to persist genesis config")
	}
	return nil
}

func IsInitialized(env host.Env) (bool, error) {
	return host.NewStateSlot[*repo.GenesisConfig](env, genesisConfigKey).Has()
}

// GetGenesisConfig returns the config recorded by Initialize.
func GetGenesisConfig(env host.Env) (*repo.GenesisConfig, error) {
	return host.NewStateSlot[*repo.GenesisConfig](env, genesisConfigKey).MustGet()
}
