package sepsm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Observer errors.
var (
	ErrObserverVector = errors.New("sepsm: observer parameter vector must have exactly 4 elements (k, q, m, sigma_s)")
	ErrObserverParams = errors.New("sepsm: observer requires m > 1 and sigma_s >= 0")
)

const eulerGamma = 0.5772156649015329

// ObserverParams holds the four ideal-observer parameters: sensitivity k,
// compressive exponent q, response-set size m, and internal noise
// standard deviation sigma_s.
type ObserverParams struct {
	K      float64
	Q      float64
	M      float64
	SigmaS float64
}

// Observer converts a scalar SNRenv into a percent-correct score via a
// fixed psychometric function derived from statistical decision theory.
type Observer struct {
	params ObserverParams

	// Location and scale of the decision criterion, derived from the
	// expected maximum of M independent standard-normal draws.
	muN  float64
	sigN float64
}

// NewObserver creates an ideal observer from the four parameters.
func NewObserver(params ObserverParams) (*Observer, error) {
	if params.M <= 1 || params.SigmaS < 0 {
		return nil, ErrObserverParams
	}

	un := distuv.UnitNormal.Quantile(1 - 1/params.M)

	return &Observer{
		params: params,
		muN:    un + eulerGamma/un,
		sigN:   1.28255 / un,
	}, nil
}

// NewObserverVector creates an ideal observer from a (k, q, m, sigma_s)
// parameter vector, which must have exactly 4 elements.
func NewObserverVector(params []float64) (*Observer, error) {
	if len(params) != 4 {
		return nil, ErrObserverVector
	}

	return NewObserver(ObserverParams{
		K:      params[0],
		Q:      params[1],
		M:      params[2],
		SigmaS: params[3],
	})
}

// Params returns the observer's parameters.
func (o *Observer) Params() ObserverParams { return o.params }

// PercentCorrect maps an SNRenv value to a predicted percent-correct
// score in [0, 100]:
//
//	d' = k * SNRenv^q
//	Pc = 100 * Phi((d' - mu_n) / sqrt(sigma_s^2 + sigma_n^2))
func (o *Observer) PercentCorrect(snrEnv float64) float64 {
	if snrEnv < 0 {
		snrEnv = 0
	}

	d := o.params.K * math.Pow(snrEnv, o.params.Q)

	dist := distuv.Normal{
		Mu:    o.muN,
		Sigma: math.Sqrt(o.params.SigmaS*o.params.SigmaS + o.sigN*o.sigN),
	}

	return 100 * dist.CDF(d)
}
