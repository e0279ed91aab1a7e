// Package group partitions observation rows by class label.
package group

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoLabels     = errors.New("no labels")
	ErrUnknownLabel = errors.New("label is not a known class")
)

// Partition maps each distinct class label, in ascending order, to the indices of the
// rows carrying that label. Rows[i] lists the rows of Labels[i] in their original order.
type Partition[L cmp.Ordered] struct {
	Labels []L
	Rows   [][]int
}

// New derives the sorted set of distinct labels present in y and builds the row index
// list of every label.
func New[L cmp.Ordered](y []L) (*Partition[L], error) {
	if len(y) == 0 {
		return nil, ErrNoLabels
	}
	return NewWithClasses(y, y)
}

// NewWithClasses partitions y over an externally supplied set of classes. Classes are
// sorted and de-duplicated. A class without any row is kept with an empty index list so
// the caller can report it. Every label of y must be one of the classes.
func NewWithClasses[L cmp.Ordered](y, classes []L) (*Partition[L], error) {
	if len(classes) == 0 {
		return nil, ErrNoLabels
	}
	labels := slices.Clone(classes)
	slices.Sort(labels)
	labels = slices.Compact(labels)

	index := make(map[L]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	rows := make([][]int, len(labels))
	for ri, label := range y {
		ci, exists := index[label]
		if !exists {
			return nil, fmt.Errorf("label %v at row %d, %w", label, ri, ErrUnknownLabel)
		}
		rows[ci] = append(rows[ci], ri)
	}
	return &Partition[L]{
		Labels: labels,
		Rows:   rows,
	}, nil
}

// Len returns the number of classes
func (p *Partition[L]) Len() int {
	return len(p.Labels)
}

// Counts returns the number of rows in each class
func (p *Partition[L]) Counts() []int {
	counts := make([]int, len(p.Rows))
	for i, rows := range p.Rows {
		counts[i] = len(rows)
	}
	return counts
}
