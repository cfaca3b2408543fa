// Package plan builds personalized 3-day workout plans and writes them as
// human-readable text artifacts.
package plan

import (
	"fmt"
	"strings"
	"time"
)

// Exercise is one prescribed movement.
type Exercise struct {
	Name string
	Sets int
	Reps string // free text: "8-12", "30 sec", "20 min"
}

// Day is one training day.
type Day struct {
	Title     string
	Focus     string
	Exercises []Exercise
}

// Plan is a complete 3-day workout plan.
type Plan struct {
	Level     string
	Goals     string
	CreatedAt time.Time
	Days      []Day
}

// Build constructs a plan for the given fitness level and goals. The
// output is deterministic for a given input: same level and goals, same
// plan (apart from the timestamp).
func Build(level, goals string) Plan {
	p := Plan{
		Level:     level,
		Goals:     goals,
		CreatedAt: time.Now(),
	}

	sets, reps := volumeFor(level)
	lower := strings.ToLower(goals)

	switch {
	case strings.Contains(lower, "muscle") || strings.Contains(lower, "strength"):
		p.Days = []Day{
			{Title: "Day 1", Focus: "Upper body push", Exercises: []Exercise{
				{Name: "Push-ups", Sets: sets, Reps: reps},
				{Name: "Overhead Press", Sets: sets, Reps: reps},
				{Name: "Dips", Sets: sets, Reps: reps},
				{Name: "Plank", Sets: sets, Reps: "45 sec"},
			}},
			{Title: "Day 2", Focus: "Lower body", Exercises: []Exercise{
				{Name: "Squats", Sets: sets, Reps: reps},
				{Name: "Lunges", Sets: sets, Reps: reps},
				{Name: "Romanian Deadlifts", Sets: sets, Reps: reps},
				{Name: "Calf Raises", Sets: sets, Reps: "15-20"},
			}},
			{Title: "Day 3", Focus: "Upper body pull", Exercises: []Exercise{
				{Name: "Pull-ups", Sets: sets, Reps: reps},
				{Name: "Rows", Sets: sets, Reps: reps},
				{Name: "Bicep Curls", Sets: sets, Reps: reps},
				{Name: "Leg Raises", Sets: sets, Reps: "10-15"},
			}},
		}
	case strings.Contains(lower, "weight") || strings.Contains(lower, "fat"):
		p.Days = []Day{
			{Title: "Day 1", Focus: "Full body circuit", Exercises: []Exercise{
				{Name: "Burpees", Sets: sets, Reps: "10-15"},
				{Name: "Squats", Sets: sets, Reps: reps},
				{Name: "Mountain Climbers", Sets: sets, Reps: "30 sec"},
				{Name: "Jump Rope", Sets: 1, Reps: "10 min"},
			}},
			{Title: "Day 2", Focus: "Cardio intervals", Exercises: []Exercise{
				{Name: "Brisk Walk or Jog", Sets: 1, Reps: "30 min"},
				{Name: "Sprint Intervals", Sets: sets, Reps: "30 sec on / 90 sec off"},
				{Name: "Plank", Sets: sets, Reps: "45 sec"},
			}},
			{Title: "Day 3", Focus: "Strength + conditioning", Exercises: []Exercise{
				{Name: "Push-ups", Sets: sets, Reps: reps},
				{Name: "Lunges", Sets: sets, Reps: reps},
				{Name: "Kettlebell Swings", Sets: sets, Reps: "15-20"},
				{Name: "Rowing Machine", Sets: 1, Reps: "15 min"},
			}},
		}
	case strings.Contains(lower, "endurance") || strings.Contains(lower, "cardio"):
		p.Days = []Day{
			{Title: "Day 1", Focus: "Steady-state cardio", Exercises: []Exercise{
				{Name: "Run or Cycle", Sets: 1, Reps: "40 min easy pace"},
				{Name: "Core Circuit", Sets: sets, Reps: "45 sec each"},
			}},
			{Title: "Day 2", Focus: "Tempo work", Exercises: []Exercise{
				{Name: "Tempo Run", Sets: 1, Reps: "25 min"},
				{Name: "Bodyweight Squats", Sets: sets, Reps: reps},
				{Name: "Plank", Sets: sets, Reps: "60 sec"},
			}},
			{Title: "Day 3", Focus: "Long session", Exercises: []Exercise{
				{Name: "Long Run, Ride, or Swim", Sets: 1, Reps: "60+ min conversational pace"},
				{Name: "Stretching", Sets: 1, Reps: "15 min"},
			}},
		}
	default:
		p.Days = []Day{
			{Title: "Day 1", Focus: "Full body strength", Exercises: []Exercise{
				{Name: "Squats", Sets: sets, Reps: reps},
				{Name: "Push-ups", Sets: sets, Reps: reps},
				{Name: "Rows", Sets: sets, Reps: reps},
				{Name: "Plank", Sets: sets, Reps: "45 sec"},
			}},
			{Title: "Day 2", Focus: "Cardio + core", Exercises: []Exercise{
				{Name: "Brisk Walk or Jog", Sets: 1, Reps: "30 min"},
				{Name: "Leg Raises", Sets: sets, Reps: "10-15"},
				{Name: "Mountain Climbers", Sets: sets, Reps: "30 sec"},
			}},
			{Title: "Day 3", Focus: "Full body mixed", Exercises: []Exercise{
				{Name: "Lunges", Sets: sets, Reps: reps},
				{Name: "Overhead Press", Sets: sets, Reps: reps},
				{Name: "Pull-ups or Rows", Sets: sets, Reps: reps},
				{Name: "Jump Rope", Sets: 1, Reps: "5 min"},
			}},
		}
	}

	return p
}

// volumeFor maps fitness level to prescribed volume.
func volumeFor(level string) (sets int, reps string) {
	switch strings.ToLower(level) {
	case "beginner":
		return 2, "8-10"
	case "advanced":
		return 4, "10-15"
	default: // intermediate
		return 3, "8-12"
	}
}

// Render returns the plan as human-readable text.
func (p Plan) Render() string {
	var b strings.Builder

	b.WriteString("GYMBRO 3-DAY WORKOUT PLAN\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "Fitness level: %s\n", p.Level)
	fmt.Fprintf(&b, "Goals: %s\n", p.Goals)
	fmt.Fprintf(&b, "Generated: %s\n", p.CreatedAt.Format("2006-01-02"))

	for _, d := range p.Days {
		fmt.Fprintf(&b, "\n%s — %s\n", d.Title, d.Focus)
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, e := range d.Exercises {
			if e.Sets > 1 {
				fmt.Fprintf(&b, "  %-28s %d x %s\n", e.Name, e.Sets, e.Reps)
			} else {
				fmt.Fprintf(&b, "  %-28s %s\n", e.Name, e.Reps)
			}
		}
	}

	b.WriteString("\nRest at least one day between sessions. Scale up when the last set feels easy.\n")
	return b.String()
}
