package domain

type Command string

const (
	CommandAdd       Command = "add"
	CommandRemove    Command = "remove"
	CommandLists     Command = "lists"
	CommandEnd       Command = "end"
	CommandUndefined Command = ""
)

// ParseCommand maps a command token to its Command. Tokens are matched
// case-sensitively; anything unknown is CommandUndefined.
func ParseCommand(token string) Command {
	switch c := Command(token); c {
	case CommandAdd, CommandRemove, CommandLists, CommandEnd:
		return c
	}
	return CommandUndefined
}

// Mode returns the validation a command's data entry goes through.
func (c Command) Mode() ValidationMode {
	switch c {
	case CommandAdd:
		return ModeAdd
	case CommandRemove:
		return ModeRemove
	}
	return ModeNone
}

type ValidationMode int

const (
	ModeNone ValidationMode = iota
	ModeAdd
	ModeRemove
)

func (m ValidationMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAdd:
		return "add"
	case ModeRemove:
		return "remove"
	}
	return "unknown"
}

// Source is the ledger an article and quantity are checked against.
func (m ValidationMode) Source() LedgerKind {
	if m == ModeRemove {
		return LedgerCart
	}
	return LedgerInventory
}

type Answer int

const (
	AnswerInvalid Answer = iota
	AnswerYes
	AnswerNo
)

func ParseAnswer(token string) Answer {
	switch token {
	case "y", "Y":
		return AnswerYes
	case "n", "N":
		return AnswerNo
	}
	return AnswerInvalid
}
