package engine

import (
	"context"
	"errors"
	"testing"

	"rogue-server/internal/domain"
	"rogue-server/pkg/api"
	"rogue-server/pkg/dungeon"
)

func TestNewGame(t *testing.T) {
	g := newTestGame(t, nil)

	expectState(t, g, domain.StateAwaitingInput)
	if g.Turn() != 0 {
		t.Errorf("turn = %d, want 0", g.Turn())
	}
	if pos := playerPos(t, g); pos != (domain.Position{X: 3, Y: 3}) {
		t.Errorf("player at %v, want room 0 centre (3,3)", pos)
	}

	t.Run("Snapshot consumes log lines", func(t *testing.T) {
		first := g.Snapshot()
		if len(first.Logs) != 1 || first.Logs[0] != welcomeMessage {
			t.Fatalf("first snapshot logs = %v", first.Logs)
		}
		if first.State != domain.StateAwaitingInput.String() || first.Depth != 1 {
			t.Errorf("unexpected header: state=%s depth=%d", first.State, first.Depth)
		}
		if first.Player == nil || first.Player.HP != 30 {
			t.Errorf("player stats = %+v", first.Player)
		}
		if len(first.Map) == 0 || len(first.Entities) == 0 {
			t.Error("snapshot must contain revealed tiles and the player")
		}

		second := g.Snapshot()
		if len(second.Logs) != 0 {
			t.Errorf("log lines sent twice: %v", second.Logs)
		}
	})
}

func TestSubmit_Rejections(t *testing.T) {
	g := newTestGame(t, nil)
	ctx := context.Background()

	t.Run("Illegal command for state", func(t *testing.T) {
		err := g.Submit(ctx, Command{Action: domain.ActionTarget, Payload: rawPayload(t, api.PositionPayload{X: 3, Y: 3})})
		if !errors.Is(err, ErrIllegalCommand) {
			t.Errorf("err = %v, want ErrIllegalCommand", err)
		}
	})

	t.Run("Unknown action", func(t *testing.T) {
		err := g.Submit(ctx, Command{Action: domain.ActionUnknown})
		if !errors.Is(err, ErrUnknownAction) {
			t.Errorf("err = %v, want ErrUnknownAction", err)
		}
	})

	t.Run("Invalid payload", func(t *testing.T) {
		err := g.Submit(ctx, Command{Action: domain.ActionMove, Payload: rawPayload(t, api.DirectionPayload{Dx: 2})})
		if err == nil {
			t.Error("expected validation error")
		}
	})

	expectState(t, g, domain.StateAwaitingInput)
	if g.Turn() != 0 {
		t.Errorf("rejected commands advanced the turn to %d", g.Turn())
	}
	if n := len(g.Journal().Actions); n != 0 {
		t.Errorf("journal has %d actions, want 0", n)
	}
}

func TestMoveAndWait(t *testing.T) {
	g := newTestGame(t, nil)

	submit(t, g, domain.ActionMove, api.DirectionPayload{Dx: 1, Dy: 0})
	expectState(t, g, domain.StateAwaitingInput)
	if pos := playerPos(t, g); pos != (domain.Position{X: 4, Y: 3}) {
		t.Errorf("player at %v, want (4,3)", pos)
	}

	stats, _ := g.World.CombatStats.Get(g.World.PlayerID)
	stats.HP = 20
	submit(t, g, domain.ActionWait, nil)
	if stats.HP != 21 {
		t.Errorf("hp after wait = %d, want 21", stats.HP)
	}

	if g.Turn() != 2 {
		t.Errorf("turn = %d, want 2", g.Turn())
	}
	if n := len(g.Journal().Actions); n != 2 {
		t.Errorf("journal has %d actions, want 2", n)
	}
}

func TestMenus(t *testing.T) {
	g := newTestGame(t, nil)

	for _, tc := range []struct {
		open domain.ActionType
		want domain.RunState
	}{
		{domain.ActionInventory, domain.StateShowInventory},
		{domain.ActionDropMenu, domain.StateShowDropItem},
		{domain.ActionRemoveMenu, domain.StateShowRemoveItem},
	} {
		t.Run(tc.want.String(), func(t *testing.T) {
			submit(t, g, tc.open, nil)
			expectState(t, g, tc.want)
			submit(t, g, domain.ActionCancel, nil)
			expectState(t, g, domain.StateAwaitingInput)
		})
	}

	if g.Turn() != 0 {
		t.Errorf("menus must not spend turns, turn = %d", g.Turn())
	}
}

func TestInventoryUse(t *testing.T) {
	g := newTestGame(t, nil)
	potion := giveItem(g, dungeon.HealthPotion)

	stats, _ := g.World.CombatStats.Get(g.World.PlayerID)
	stats.HP = 10

	submit(t, g, domain.ActionInventory, nil)
	submit(t, g, domain.ActionSelect, api.ItemPayload{ItemID: idString(potion)})

	expectState(t, g, domain.StateAwaitingInput)
	if stats.HP != 18 {
		t.Errorf("hp = %d, want 18", stats.HP)
	}
	if g.World.Alive(potion) {
		t.Error("consumable must be deleted after use")
	}
	if g.Turn() != 1 {
		t.Errorf("turn = %d, want 1", g.Turn())
	}

	t.Run("Item not in backpack", func(t *testing.T) {
		submit(t, g, domain.ActionInventory, nil)
		submit(t, g, domain.ActionSelect, api.ItemPayload{ItemID: idString(potion)})
		expectState(t, g, domain.StateShowInventory)
		if !logContains(g.World, "You don't have that item.") {
			t.Error("missing log line")
		}
	})
}

func TestTargeting(t *testing.T) {
	g := newTestGame(t, nil)
	scroll := giveItem(g, dungeon.MagicMissileScroll)
	goblin := spawnMonster(g, domain.Position{X: 5, Y: 3}, 4)

	submit(t, g, domain.ActionInventory, nil)
	submit(t, g, domain.ActionSelect, api.ItemPayload{ItemID: idString(scroll)})
	expectState(t, g, domain.StateShowTargeting)

	if snap := g.Snapshot(); len(snap.Targets) == 0 {
		t.Error("snapshot in targeting mode must list targetable tiles")
	}

	t.Run("Out of range", func(t *testing.T) {
		submit(t, g, domain.ActionTarget, api.PositionPayload{X: 15, Y: 6})
		expectState(t, g, domain.StateShowTargeting)
		if !logContains(g.World, "That target is out of range.") {
			t.Error("missing log line")
		}
	})

	submit(t, g, domain.ActionTarget, api.PositionPayload{X: 5, Y: 3})
	expectState(t, g, domain.StateAwaitingInput)

	stats, ok := g.World.CombatStats.Get(goblin)
	if !ok {
		t.Fatal("goblin is gone")
	}
	if stats.HP != dungeon.Goblin.HP-dungeon.MagicMissileScroll.Damage {
		t.Errorf("goblin hp = %d", stats.HP)
	}
	if g.World.Alive(scroll) {
		t.Error("scroll must be consumed")
	}
}

func TestDescend(t *testing.T) {
	g := newTestGame(t, nil)

	t.Run("No stairs", func(t *testing.T) {
		submit(t, g, domain.ActionDescend, nil)
		expectState(t, g, domain.StateAwaitingInput)
		if g.Turn() != 0 {
			t.Errorf("turn = %d, want 0", g.Turn())
		}
		if !logContains(g.World, "There is no way down from here.") {
			t.Error("missing log line")
		}
	})

	t.Run("Next level keeps the backpack", func(t *testing.T) {
		dagger := giveItem(g, dungeon.Dagger)
		floorItem := dungeon.Shield.Spawn(g.World, domain.Position{X: 5, Y: 5})
		player := g.World.PlayerID

		pos, _ := g.World.Positions.Get(player)
		*pos = g.World.Map.Rooms[1].Center()

		submit(t, g, domain.ActionDescend, nil)
		expectState(t, g, domain.StateAwaitingInput)

		if g.World.Map.Depth != 2 {
			t.Errorf("depth = %d, want 2", g.World.Map.Depth)
		}
		if g.World.PlayerID != player {
			t.Error("player entity must survive the level change")
		}
		if p := playerPos(t, g); p != g.World.Map.Rooms[0].Center() {
			t.Errorf("player at %v, want room 0 centre", p)
		}
		if !g.World.Alive(dagger) || !g.World.InBackpack.Has(dagger) {
			t.Error("backpack item was lost")
		}
		if g.World.Alive(floorItem) {
			t.Error("items left on the floor must be deleted")
		}
		if !logContains(g.World, "You descend to the next level.") {
			t.Error("missing log line")
		}
	})
}

func TestSaveAndLoad(t *testing.T) {
	g := newTestGame(t, NewMemoryPersistence())
	submit(t, g, domain.ActionMove, api.DirectionPayload{Dx: 1})
	saved := g.World

	submit(t, g, domain.ActionSave, nil)
	expectState(t, g, domain.StateMainMenu)

	submit(t, g, domain.ActionLoadGame, nil)
	expectState(t, g, domain.StateAwaitingInput)
	if g.World != saved {
		t.Fatal("load must restore the saved world")
	}
	if pos := playerPos(t, g); pos != (domain.Position{X: 4, Y: 3}) {
		t.Errorf("player at %v after load", pos)
	}

	t.Run("New game after save starts over", func(t *testing.T) {
		submit(t, g, domain.ActionSave, nil)
		submit(t, g, domain.ActionNewGame, nil)
		expectState(t, g, domain.StateAwaitingInput)
		if g.World == saved {
			t.Error("new game must not continue the saved world")
		}
		if pos := playerPos(t, g); pos != (domain.Position{X: 3, Y: 3}) {
			t.Errorf("player at %v in a new game", pos)
		}
	})
}

func TestSaveWithoutPersistence(t *testing.T) {
	g := newTestGame(t, nil)

	submit(t, g, domain.ActionSave, nil)
	expectState(t, g, domain.StateMainMenu)
	if !logContains(g.World, "Saving is not available.") {
		t.Error("missing save log line")
	}

	submit(t, g, domain.ActionLoadGame, nil)
	expectState(t, g, domain.StateMainMenu)
	if !logContains(g.World, "There is no saved game.") {
		t.Error("missing load log line")
	}
}

func TestPlayerDeath(t *testing.T) {
	g := newTestGame(t, nil)
	spawnMonster(g, domain.Position{X: 4, Y: 3}, 100)

	stats, _ := g.World.CombatStats.Get(g.World.PlayerID)
	stats.HP = 1

	submit(t, g, domain.ActionWait, nil)
	expectState(t, g, domain.StateGameOver)

	err := g.Submit(context.Background(), Command{Action: domain.ActionWait})
	if !errors.Is(err, ErrIllegalCommand) {
		t.Errorf("dead player can still act: %v", err)
	}

	submit(t, g, domain.ActionQuitToMenu, nil)
	expectState(t, g, domain.StateMainMenu)

	fresh, ok := g.World.CombatStats.Get(g.World.PlayerID)
	if !ok || fresh.HP != fresh.MaxHP {
		t.Errorf("world was not reset: %+v", fresh)
	}
	if g.World.Map.Depth != 1 {
		t.Errorf("depth = %d, want 1", g.World.Map.Depth)
	}

	submit(t, g, domain.ActionNewGame, nil)
	expectState(t, g, domain.StateAwaitingInput)
}
