package game

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
)

// unitQueue is the current player's units that still want orders, in
// creation order, with a cursor on the selected unit (-1 for none).
type unitQueue struct {
	ids    []int
	cursor int
}

func (q *unitQueue) reset() {
	q.ids = q.ids[:0]
	q.cursor = -1
}

func (q *unitQueue) indexOf(id int) int {
	for i, qid := range q.ids {
		if qid == id {
			return i
		}
	}
	return -1
}

func (q *unitQueue) add(id int) {
	if q.indexOf(id) < 0 {
		q.ids = append(q.ids, id)
	}
}

func (q *unitQueue) selected() int {
	if q.cursor < 0 || q.cursor >= len(q.ids) {
		return -1
	}
	return q.ids[q.cursor]
}

// rebuildQueue collects the current player's queueable units and selects
// the first one.
func (e *Engine) rebuildQueue() {
	e.queue.reset()
	for _, u := range e.gs.UnitsOf(e.gs.CurrentPlayerID) {
		if u.Queueable() {
			e.queue.ids = append(e.queue.ids, u.ID)
		}
	}
	if len(e.queue.ids) == 0 {
		e.publish(events.NewEndOfTurnEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayerID))
		return
	}
	e.selectIndex(0)
}

// clearQueue drops the cursor at a turn handoff
func (e *Engine) clearQueue() {
	if id := e.queue.selected(); id >= 0 {
		e.publish(events.NewUnitDeselectedEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayerID, id))
	}
	e.queue.reset()
}

// dropFromQueue removes a unit that can no longer take orders. If it was
// selected the next unit is selected; an emptied queue emits EndOfTurn.
func (e *Engine) dropFromQueue(id int) {
	i := e.queue.indexOf(id)
	if i < 0 {
		return
	}
	wasSelected := i == e.queue.cursor
	e.queue.ids = append(e.queue.ids[:i], e.queue.ids[i+1:]...)
	if i < e.queue.cursor {
		e.queue.cursor--
	}

	if len(e.queue.ids) == 0 {
		e.queue.cursor = -1
		e.publish(events.NewEndOfTurnEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayerID))
		return
	}
	if wasSelected {
		e.selectIndex(i % len(e.queue.ids))
	}
}

func (e *Engine) selectIndex(i int) *core.Unit {
	e.queue.cursor = i
	u := e.gs.Unit(e.queue.ids[i])
	e.publish(events.NewUnitSelectedEvent(e.gameID, e.gs.Turn, u))
	return u
}

// CurrentUnit returns the selected unit, or nil
func (e *Engine) CurrentUnit() *core.Unit {
	if e.gs == nil {
		return nil
	}
	id := e.queue.selected()
	if id < 0 {
		return nil
	}
	return e.gs.Unit(id)
}

// QueuedUnits returns the ids waiting for orders, in queue order
func (e *Engine) QueuedUnits() []int {
	return append([]int(nil), e.queue.ids...)
}

// SelectNextUnit advances the cursor with wraparound
func (e *Engine) SelectNextUnit() *core.Unit {
	if e.gs == nil || len(e.queue.ids) == 0 {
		return nil
	}
	return e.selectIndex((e.queue.cursor + 1) % len(e.queue.ids))
}

// SelectPreviousUnit moves the cursor back with wraparound
func (e *Engine) SelectPreviousUnit() *core.Unit {
	if e.gs == nil || len(e.queue.ids) == 0 {
		return nil
	}
	i := e.queue.cursor - 1
	if i < 0 {
		i = len(e.queue.ids) - 1
	}
	return e.selectIndex(i)
}

// SelectUnit selects a queued unit directly
func (e *Engine) SelectUnit(unitID int) bool {
	if e.gs == nil {
		return false
	}
	i := e.queue.indexOf(unitID)
	if i < 0 {
		return false
	}
	e.selectIndex(i)
	return true
}

// DeselectUnit clears the selection without touching the queue
func (e *Engine) DeselectUnit() bool {
	id := e.queue.selected()
	if id < 0 {
		return false
	}
	e.queue.cursor = -1
	e.publish(events.NewUnitDeselectedEvent(e.gameID, e.gs.Turn, e.gs.CurrentPlayerID, id))
	return true
}

// BlinkSelectedUnit asks the presentation layer to highlight the selection
func (e *Engine) BlinkSelectedUnit() bool {
	u := e.CurrentUnit()
	if u == nil {
		return false
	}
	e.publish(events.NewUnitBlinkEvent(e.gameID, e.gs.Turn, u))
	return true
}
