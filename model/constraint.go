package model

import (
	"fmt"
	"strings"
)

// EqualDOF is a multi-point constraint forcing the listed DOFs of each slave
// node to equal those of the master node. Node tags are 1-based.
type EqualDOF struct {
	Tag        int
	MasterNode int
	SlaveNodes []int
	DOFs       []int
}

// Tcl renders one equalDOF line per slave node.
func (c *EqualDOF) Tcl() string {
	dofs := make([]string, len(c.DOFs))
	for i, d := range c.DOFs {
		dofs[i] = fmt.Sprintf("%d", d)
	}
	lines := make([]string, len(c.SlaveNodes))
	for i, slave := range c.SlaveNodes {
		lines[i] = fmt.Sprintf("equalDOF %d %d %s", c.MasterNode, slave, strings.Join(dofs, " "))
	}
	return strings.Join(lines, "\n")
}

// ConstraintSet owns the model's multi-point constraints in creation order.
type ConstraintSet struct {
	MP []*EqualDOF
}

func NewConstraintSet() *ConstraintSet {
	return &ConstraintSet{}
}

// CreateEqualDOF registers an equal-DOF constraint and returns it. Tags run
// from 1 in creation order.
func (s *ConstraintSet) CreateEqualDOF(master int, slaves []int, dofs []int) *EqualDOF {
	c := &EqualDOF{
		Tag:        len(s.MP) + 1,
		MasterNode: master,
		SlaveNodes: append([]int(nil), slaves...),
		DOFs:       append([]int(nil), dofs...),
	}
	s.MP = append(s.MP, c)
	return c
}
