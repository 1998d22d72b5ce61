package domain

import "time"

// Priority tiers. Lower numbers are more urgent. Effort bumps can push a
// task past PriorityLow.
const (
	PriorityTop  = 1
	PriorityHigh = 2
	PriorityLow  = 3
)

// EffortBumpThreshold is the effort above which a task drops one tier.
const EffortBumpThreshold = 5

// Advisory notes, selected by final priority tier.
const (
	NoteTopPriority = "🚨 Urgent! This is a top priority task. It needs immediate attention, " +
		"as it's related to a project or due soon."
	NoteUrgentPersonal = "⚡ Urgent personal task! This task must be completed soon. " +
		"Plan it well and manage your time wisely."
	NoteHighPriority = "🛑 High priority task! You have time, but it's approaching quickly. " +
		"Prioritize this for better efficiency."
	NoteLowPriority = "✅ Low priority task. You can focus on this later. " +
		"It's not urgent but should be done soon to stay organized."
)

const day = 24 * time.Hour

// DaysUntil returns the number of whole days between now and midnight of the
// deadline, taken in now's location. Partial days round toward negative
// infinity, so a deadline of today evaluated at noon yields -1.
func DaysUntil(deadline Date, now time.Time) int {
	d := deadline.Midnight(now.Location()).Sub(now)
	days := d / day
	if d%day < 0 {
		days--
	}
	return int(days)
}

// Score computes the priority tier and advisory note for a task at the
// given instant. It is a pure function of its arguments.
//
// Tier selection is evaluated in order:
//   - project-related tasks are tier 1
//   - personal tasks due within 2 days are tier 2
//   - any task due within 1 day is tier 2
//   - everything else is tier 3
//
// Effort above EffortBumpThreshold then adds one to the tier, including for
// project-related tasks.
func Score(t *Task, now time.Time) (int, string) {
	daysLeft := DaysUntil(t.Deadline, now)

	var priority int
	switch {
	case t.ProjectRelated:
		priority = PriorityTop
	case t.IsPersonal && daysLeft <= 2:
		priority = PriorityHigh
	case daysLeft <= 1:
		priority = PriorityHigh
	default:
		priority = PriorityLow
	}

	if t.EstimatedEffort > EffortBumpThreshold {
		priority++
	}

	return priority, noteFor(priority, t.IsPersonal)
}

// noteFor selects the advisory note for a final priority tier.
func noteFor(priority int, isPersonal bool) string {
	switch {
	case priority == PriorityTop:
		return NoteTopPriority
	case priority == PriorityHigh && isPersonal:
		return NoteUrgentPersonal
	case priority == PriorityHigh:
		return NoteHighPriority
	default:
		return NoteLowPriority
	}
}
