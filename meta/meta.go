// meta/meta.go
package meta

// STARTING_COINS is the coin balance every player starts with.
const STARTING_COINS = 3

// STARTING_INFLUENCE is the number of concealed cards dealt to every player.
const STARTING_INFLUENCE = 2

// COPIES_PER_ROLE is the default number of copies of each role in the deck.
const COPIES_PER_ROLE = 3

// MANDATORY_COUP_COINS forces a Coup once a player holds this many coins.
const MANDATORY_COUP_COINS = 10

// MAX_REPROMPTS bounds how often a provider is re-asked after an illegal action.
const MAX_REPROMPTS = 3

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 4

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 400

// WITH_CUTOFF defines the cutoff value for MCTS.
const WITH_CUTOFF = 200

// MAX_TURNS ends a game without winner after this many turns.
const MAX_TURNS = 300
