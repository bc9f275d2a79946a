package game

import "fmt"

// ActionKind is the closed set of turn actions.
type ActionKind int

const (
	Income      ActionKind = iota // 0
	ForeignAid                    // 1
	Coup                          // 2
	Tax                           // 3
	Assassinate                   // 4
	Steal                         // 5
	Exchange                      // 6
)

const (
	CoupCost        = 7
	AssassinateCost = 3
	StealAmount     = 2
	ExchangeDraw    = 2
)

// ActionSpec is the static catalog row the resolution engine is driven by.
type ActionSpec struct {
	Kind           ActionKind
	Name           string
	Cost           int
	Gain           int
	BlockableBy    []Role
	Challengeable  bool
	Claim          Role
	RequiresTarget bool
}

var catalog = []ActionSpec{
	{Kind: Income, Name: "Income", Gain: 1},
	{Kind: ForeignAid, Name: "ForeignAid", Gain: 2, BlockableBy: []Role{Duke}},
	{Kind: Coup, Name: "Coup", Cost: CoupCost, RequiresTarget: true},
	{Kind: Tax, Name: "Tax", Gain: 3, Challengeable: true, Claim: Duke},
	{Kind: Assassinate, Name: "Assassinate", Cost: AssassinateCost, BlockableBy: []Role{Contessa}, Challengeable: true, Claim: Assassin, RequiresTarget: true},
	{Kind: Steal, Name: "Steal", BlockableBy: []Role{Captain, Ambassador}, Challengeable: true, Claim: Captain, RequiresTarget: true},
	{Kind: Exchange, Name: "Exchange", Challengeable: true, Claim: Ambassador},
}

// Catalog returns a copy of the action table in kind order.
func Catalog() []ActionSpec {
	specs := make([]ActionSpec, len(catalog))
	for i, spec := range catalog {
		spec.BlockableBy = append([]Role(nil), spec.BlockableBy...)
		specs[i] = spec
	}
	return specs
}

func (k ActionKind) Spec() ActionSpec {
	if k < 0 || int(k) >= len(catalog) {
		panic(fmt.Sprintf("unknown action kind %d", k))
	}
	return catalog[k]
}

func (k ActionKind) String() string {
	return k.Spec().Name
}

// CanBlock reports whether role is a legal block claim against k.
func (k ActionKind) CanBlock(role Role) bool {
	for _, r := range k.Spec().BlockableBy {
		if r == role {
			return true
		}
	}
	return false
}

// Action is one proposed turn action.
type Action struct {
	Kind   ActionKind
	Actor  PlayerID
	Target PlayerID
}

func NewAction(kind ActionKind, actor PlayerID) Action {
	return Action{Kind: kind, Actor: actor, Target: NoPlayer}
}

func NewTargetedAction(kind ActionKind, actor, target PlayerID) Action {
	return Action{Kind: kind, Actor: actor, Target: target}
}

func (a Action) Spec() ActionSpec {
	return a.Kind.Spec()
}

func (a Action) String() string {
	if a.Target == NoPlayer {
		return fmt.Sprintf("%s by %d", a.Kind, a.Actor)
	}
	return fmt.Sprintf("%s by %d on %d", a.Kind, a.Actor, a.Target)
}
