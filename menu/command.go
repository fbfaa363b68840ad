package menu

// Command is an entry in the command list, numbered as shown to the user.
type Command int

const (
	CommandGrant Command = iota + 1
	CommandDeleteChannels
	CommandDeleteRoles
	CommandCreateChannels
	CommandAllInOne
	CommandExit
)

var commandNames = map[Command]string{
	CommandGrant:          "Give permissions",
	CommandDeleteChannels: "Delete channels",
	CommandDeleteRoles:    "Delete roles",
	CommandCreateChannels: "Create channels",
	CommandAllInOne:       "All in One",
	CommandExit:           "Exit",
}

func (c Command) String() string {
	return commandNames[c]
}

// needsCount is true for commands that ask how many channels to create.
func (c Command) needsCount() bool {
	return c == CommandCreateChannels || c == CommandAllInOne
}

// destructive is true for commands that delete anything.
func (c Command) destructive() bool {
	return c == CommandDeleteChannels || c == CommandDeleteRoles || c == CommandAllInOne
}
