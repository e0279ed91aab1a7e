package discriminant

import (
	"cmp"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-discriminant/util"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

// Model is a serializeable fitted discriminant. Classes are stored in ascending label
// order, matching the rows of Coefficients.
type Model[L cmp.Ordered] struct {
	Options      *Options   `json:"options"`
	Observations int        `json:"observations"`
	Features     int        `json:"features"`
	Classes      []Class[L] `json:"classes"`
}

// Class holds the estimated statistics and the linear discriminant function of one class
type Class[L cmp.Ordered] struct {
	Label     L         `json:"label"`
	Count     int       `json:"count"`
	Prior     float64   `json:"prior"`
	Mean      []float64 `json:"mean"`
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// Labels returns the class labels in coefficient row order
func (m *Model[L]) Labels() []L {
	labels := make([]L, 0, len(m.Classes))
	for _, c := range m.Classes {
		labels = append(labels, c.Label)
	}
	return labels
}

// Priors returns the empirical class frequencies in coefficient row order
func (m *Model[L]) Priors() []float64 {
	priors := make([]float64, 0, len(m.Classes))
	for _, c := range m.Classes {
		priors = append(priors, c.Prior)
	}
	return priors
}

// Coefficients returns a new k by m+1 matrix with the intercept of each class in column
// 0 followed by its feature weights. Returns nil for a model without classes.
func (m *Model[L]) Coefficients() *mat.Dense {
	if len(m.Classes) == 0 || m.Features == 0 {
		return nil
	}
	w := mat.NewDense(len(m.Classes), m.Features+1, nil)
	for i, c := range m.Classes {
		w.Set(i, 0, c.Intercept)
		for j, v := range c.Weights {
			w.Set(i, j+1, v)
		}
	}
	return w
}

// TablePrint writes the per class priors, intercepts and weights
func (m Model[L]) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sLinear Discriminant:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sObservations: %d    Features: %d    Classes: %d\n",
		prefix, util.IndentExpand(indent, 1),
		m.Observations, m.Features, len(m.Classes),
	); err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sLabel\tCount\tPrior\tIntercept\tWeights\t\n", prefix, util.IndentExpand(indent, 1)); err != nil {
		return err
	}
	for _, c := range m.Classes {
		labelOut, err := json.Marshal(c.Label)
		if err != nil {
			return err
		}
		weights := make([]string, 0, len(c.Weights))
		for _, v := range c.Weights {
			weights = append(weights, fmt.Sprintf("%.3f", v))
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%d\t%.3f\t%.3f\t%s\t\n",
			prefix, util.IndentExpand(indent, 1),
			string(labelOut), c.Count, c.Prior, c.Intercept, strings.Join(weights, " ")); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
