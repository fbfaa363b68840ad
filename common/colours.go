package common

import "github.com/diamondburned/arikawa/v3/discord"

const (
	ColourRed   discord.Color = 0xe74c3c
	ColourGreen discord.Color = 0x2ecc71
)
