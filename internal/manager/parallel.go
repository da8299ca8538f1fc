package manager

import "github.com/aretw0/animator/pkg/domain"

// parallel sends enter/exit to every child in the same tick.
type parallel struct {
	host Host
}

func (m *parallel) Name() domain.ManagerName { return domain.ManagerParallel }

func (m *parallel) DurationEnter(children []domain.Animator) float64 {
	total := 0.0
	for _, child := range orAll(m.host, children) {
		total = max(total, enterDuration(child))
	}
	return total
}

func (m *parallel) EnterChildren(children []domain.Animator) {
	for _, child := range children {
		child.Send(domain.ActionEnter)
	}
}

func (m *parallel) ExitChildren(children []domain.Animator) {
	for _, child := range children {
		child.Send(domain.ActionExit)
	}
}

func (m *parallel) Destroy() {}
