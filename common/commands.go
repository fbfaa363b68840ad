package common

import (
	"github.com/diamondburned/arikawa/v3/api"
)

// HiCommand is the name of the only slash command.
const HiCommand = "hi"

// Commands is the slash command set synced to Discord, either globally or to a single guild.
var Commands = []api.CreateCommandData{
	{
		Name:        HiCommand,
		Description: "Say hi and ping the user",
	},
}
