package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution selects how random tensor values are sampled.
//
// It is a closed set: Default, Uniform, Normal and Bernoulli. Backends draw a
// uniform variate u in (0, 1) from their own generator and map it with Sample;
// the generator algorithm is the backend's business.
type Distribution interface {
	// Sample maps a uniform variate u in (0, 1) to a draw from the distribution.
	Sample(u float64) float64
	// Validate reports malformed parameters.
	Validate() error
	fmt.Stringer

	distribution()
}

// Default samples uniformly from [0, 1).
type Default struct{}

// Uniform samples uniformly from [Low, High).
type Uniform struct {
	Low, High float64
}

// Normal samples from a normal distribution.
type Normal struct {
	Mean, Std float64
}

// Bernoulli samples 1 with probability Prob and 0 otherwise.
type Bernoulli struct {
	Prob float64
}

// StandardNormal is Normal{Mean: 0, Std: 1}.
var StandardNormal = Normal{Mean: 0, Std: 1}

func (Default) distribution()   {}
func (Uniform) distribution()   {}
func (Normal) distribution()    {}
func (Bernoulli) distribution() {}

// Sample implements Distribution.
func (Default) Sample(u float64) float64 { return u }

// Validate implements Distribution.
func (Default) Validate() error { return nil }

func (Default) String() string { return "Default" }

// Sample implements Distribution.
func (d Uniform) Sample(u float64) float64 {
	return distuv.Uniform{Min: d.Low, Max: d.High}.Quantile(u)
}

// Validate implements Distribution.
func (d Uniform) Validate() error {
	if math.IsNaN(d.Low) || math.IsNaN(d.High) || d.Low > d.High {
		return fmt.Errorf("%w: uniform bounds [%g, %g)", ErrInvalidArgument, d.Low, d.High)
	}
	return nil
}

func (d Uniform) String() string { return fmt.Sprintf("Uniform(%g, %g)", d.Low, d.High) }

// Sample implements Distribution.
func (d Normal) Sample(u float64) float64 {
	if d.Std == 0 {
		return d.Mean
	}
	return distuv.Normal{Mu: d.Mean, Sigma: d.Std}.Quantile(u)
}

// Validate implements Distribution.
func (d Normal) Validate() error {
	if math.IsNaN(d.Mean) || math.IsNaN(d.Std) || d.Std < 0 {
		return fmt.Errorf("%w: normal std %g", ErrInvalidArgument, d.Std)
	}
	return nil
}

func (d Normal) String() string { return fmt.Sprintf("Normal(%g, %g)", d.Mean, d.Std) }

// Sample implements Distribution.
func (d Bernoulli) Sample(u float64) float64 {
	if u < d.Prob {
		return 1
	}
	return 0
}

// Validate implements Distribution.
func (d Bernoulli) Validate() error {
	if math.IsNaN(d.Prob) || d.Prob < 0 || d.Prob > 1 {
		return fmt.Errorf("%w: bernoulli probability %g", ErrInvalidArgument, d.Prob)
	}
	return nil
}

func (d Bernoulli) String() string { return fmt.Sprintf("Bernoulli(%g)", d.Prob) }
