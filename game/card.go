package game

// Role is the character printed on an influence card.
type Role int

const (
	NoRole     Role = iota // 0
	Duke                   // 1
	Assassin               // 2
	Captain                // 3
	Ambassador             // 4
	Contessa               // 5
)

// StandardRoles lists every role of the base game.
var StandardRoles = []Role{Duke, Assassin, Captain, Ambassador, Contessa}

func (r Role) String() string {
	switch r {
	case Duke:
		return "Duke"
	case Assassin:
		return "Assassin"
	case Captain:
		return "Captain"
	case Ambassador:
		return "Ambassador"
	case Contessa:
		return "Contessa"
	default:
		return "None"
	}
}

// Card is one influence card. IDs are unique within a game.
type Card struct {
	ID       int
	Role     Role
	Revealed bool
}
