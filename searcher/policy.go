package searcher

import "math"

// ucb1 scores the children of one parent: wins/n + c*sqrt(ln(N)/n).
type ucb1 struct {
	c    float64
	logN float64
}

func newUCB1(c float64, parentVisits int) ucb1 {
	if parentVisits == 0 {
		panic("parent visits cannot be 0")
	}
	return ucb1{c: c, logN: math.Log(float64(parentVisits))}
}

func (u ucb1) evaluate(wins float64, visits int) float64 {
	if visits == 0 {
		panic("child visits cannot be 0")
	}
	n := float64(visits)
	return wins/n + u.c*math.Sqrt(u.logN/n)
}
