package constants

import (
	"strings"
)

type Task string

const (
	TaskGeneral  Task = "general"
	TaskSummary  Task = "summary"
	TaskMedical  Task = "medical"
	TaskInvoice  Task = "invoice"
	TaskResearch Task = "research"
)

var allTasks = []Task{
	TaskGeneral,
	TaskSummary,
	TaskMedical,
	TaskInvoice,
	TaskResearch,
}

func AllTasks() []string {
	result := make([]string, len(allTasks))
	for i, t := range allTasks {
		result[i] = string(t)
	}
	return result
}

// CanonicalizeTask maps loose user input onto a recognized task identifier.
func CanonicalizeTask(input string) (Task, bool) {
	if input == "" {
		return TaskGeneral, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Task{
		"summarize":      TaskSummary,
		"summarise":      TaskSummary,
		"med":            TaskMedical,
		"medical_report": TaskMedical,
		"lab":            TaskMedical,
		"bill":           TaskInvoice,
		"receipt":        TaskInvoice,
		"financial":      TaskInvoice,
		"paper":          TaskResearch,
		"academic":       TaskResearch,
	}

	if t, ok := synonyms[normalized]; ok {
		return t, true
	}

	for _, t := range allTasks {
		if normalized == string(t) {
			return t, true
		}
	}

	return TaskGeneral, false
}
