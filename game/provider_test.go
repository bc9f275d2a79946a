package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayTurn(t *testing.T) {
	t.Run("asks the current provider for an action", func(t *testing.T) {
		alice := &scripted{actions: []Action{NewAction(ForeignAid, 0)}}
		bob := &scripted{}
		g := newTestGame(t, alice, bob)

		outcome, err := g.PlayTurn()

		require.NoError(t, err)
		require.True(t, outcome.Succeeded)
		require.Equal(t, 5, g.Players[0].Coins)
		require.Equal(t, []DecisionKind{DecideBlock}, bob.asked, "Bob should be offered to block foreign aid")
		require.Equal(t, 1, g.Turn())
		require.Equal(t, PlayerID(1), g.CurrentPlayer())
	})

	t.Run("re-prompts after an illegal action", func(t *testing.T) {
		coup := NewTargetedAction(Coup, 0, 1)
		alice := &scripted{actions: []Action{coup, NewAction(Income, 0)}}
		g := newTestGame(t, alice, &scripted{})

		outcome, err := g.PlayTurn()

		require.NoError(t, err)
		require.Equal(t, Income, outcome.Action.Kind)
		require.Equal(t, []DecisionKind{DecideAction, DecideAction}, alice.asked)
	})

	t.Run("forces the first available action after repeated illegal choices", func(t *testing.T) {
		coup := NewTargetedAction(Coup, 0, 1)
		alice := &scripted{actions: []Action{coup, coup, coup, coup}}
		g := newTestGame(t, alice, &scripted{})

		outcome, err := g.PlayTurn()

		require.NoError(t, err)
		require.Equal(t, Income, outcome.Action.Kind)
		require.Equal(t, 4, g.Players[0].Coins, "Income is the first available action")
	})

	t.Run("fails without providers", func(t *testing.T) {
		g := newTestGame(t)

		_, err := g.PlayTurn()

		require.Error(t, err)
	})

	t.Run("normalizes a block claim that cannot block", func(t *testing.T) {
		alice := &scripted{actions: []Action{NewAction(ForeignAid, 0)}}
		bob := &scripted{block: Contessa}
		g := newTestGame(t, alice, bob)

		outcome, err := g.PlayTurn()

		require.NoError(t, err)
		require.True(t, outcome.Blocked, "Contessa claim should be read as a Duke block")
		require.Equal(t, Duke, bob.observed[1].Claim)
	})
}

func TestObserver(t *testing.T) {
	t.Run("every seat observes every decision", func(t *testing.T) {
		alice := &scripted{actions: []Action{NewAction(Tax, 0)}}
		bob := &scripted{challenge: true}
		g := newTestGame(t, alice, bob)

		_, err := g.PlayTurn()

		require.NoError(t, err)
		require.Len(t, alice.observed, 3, "Action, challenge and the lost card")
		require.Equal(t, alice.observed, bob.observed)
		require.Equal(t, DecideLoseCard, alice.observed[2].Kind)
		require.Zero(t, alice.observed[2].Card, "Card ids stay private")
		require.NotEqual(t, NoRole, alice.observed[2].Role, "Revealed role is public")
	})

	t.Run("only the exchanging player sees what was kept", func(t *testing.T) {
		alice := &scripted{actions: []Action{NewAction(Exchange, 0)}}
		bob := &scripted{}
		g := newTestGame(t, alice, bob)
		rig(t, g, 0, Ambassador, Duke)

		_, err := g.PlayTurn()

		require.NoError(t, err)
		last := len(alice.observed) - 1
		require.Equal(t, DecideKeepCards, alice.observed[last].Kind)
		require.NotEqual(t, Keep{}, alice.observed[last].Keep)
		require.Equal(t, Keep{}, bob.observed[last].Keep)
	})
}
