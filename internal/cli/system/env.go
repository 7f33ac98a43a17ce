package system

import (
	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/config"
)

// EnvCmd lists the environment variables the configuration reads, or
// dumps the effective configuration.
type EnvCmd struct {
	YAML bool `help:"Print the effective configuration as YAML." name:"yaml"`
}

func (cmd *EnvCmd) Run(ctx *cli.Context) error {
	if cmd.YAML {
		out, err := ctx.Config.YAML()
		if err != nil {
			return err
		}
		ctx.Printf("%s", out)
		return nil
	}

	ctx.Println(config.Description())
	ctx.Println()
	ctx.Printf("API:      %s\n", ctx.Config.API.BaseURL)
	ctx.Printf("Chat:     %s\n", ctx.Config.ChatURL())
	ctx.Printf("Timezone: %s\n", ctx.Config.Location())
	return nil
}
