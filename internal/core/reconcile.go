package core

import "sort"

// Reconcile aggregates expenses by project and computes each project's
// financial status. Every input project appears exactly once in the output,
// in input order, including projects with no expense rows. Amounts are
// exact cent arithmetic, so the two-decimal currency precision holds by
// construction, and Remaining goes negative for over-budget projects.
//
// The computation is pure: calling it twice on the same inputs yields
// identical results.
func Reconcile(projects []Project, expenses []ExpenseEntry) []FinancialStatus {
	spent := make(map[string]int64, len(projects))
	for _, e := range expenses {
		spent[NormalizeID(e.ProjectID)] += e.Amount.Cents
	}

	out := make([]FinancialStatus, 0, len(projects))
	for _, p := range projects {
		total := spent[NormalizeID(p.ID)]
		out = append(out, FinancialStatus{
			ProjectID:     p.ID,
			Name:          p.Name,
			InitialBudget: p.InitialBudget,
			TotalSpent:    Money{Cents: total},
			Remaining:     Money{Cents: p.InitialBudget.Cents - total},
			StartDate:     p.StartDate,
		})
	}
	return out
}

// ProjectExpenses filters a project's entries, ordered by week ascending,
// for the detailed report view.
func ProjectExpenses(expenses []ExpenseEntry, projectID string) []ExpenseEntry {
	id := NormalizeID(projectID)
	var out []ExpenseEntry
	for _, e := range expenses {
		if NormalizeID(e.ProjectID) == id {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}
