// Package retry selects one of a closed set of retry policies from a
// tagged configuration block.
//
// The "retry" field discriminates; only the selected strategy's fields are
// decoded and validated, so a block carrying fields of another strategy
// never produces spurious errors.
package retry

import (
	"time"

	"github.com/go-viper/mapstructure/v2"

	cfgerrors "github.com/datashelf/shelf/internal/errors"
)

// Kind is the retry-strategy discriminator.
type Kind string

const (
	KindNever       Kind = "never"
	KindOnce        Kind = "once"
	KindConstant    Kind = "constant"
	KindExponential Kind = "exponential"
)

// Kinds is the closed set of legal discriminator values, for diagnostics.
func Kinds() []string {
	return []string{string(KindNever), string(KindOnce), string(KindConstant), string(KindExponential)}
}

// Strategy is the sealed set of retry policies.
type Strategy interface {
	Kind() Kind
	sealed()
}

// GiveUp never retries.
type GiveUp struct{}

func (GiveUp) Kind() Kind { return KindNever }
func (GiveUp) sealed()    {}

// Once retries a single time after a fixed delay.
type Once struct {
	Delay time.Duration
}

func (Once) Kind() Kind { return KindOnce }
func (Once) sealed()    {}

// Constant retries up to MaxRetries times with a fixed delay between
// attempts.
type Constant struct {
	Delay      time.Duration
	MaxRetries int
}

func (Constant) Kind() Kind { return KindConstant }
func (Constant) sealed()    {}

// Exponential retries up to MaxRetries times, doubling the delay from Delay
// and capping it at MaxDelay.
type Exponential struct {
	Delay      time.Duration
	MaxDelay   time.Duration
	MaxRetries int
}

func (Exponential) Kind() Kind { return KindExponential }
func (Exponential) sealed()    {}

type oncePayload struct {
	Delay time.Duration `mapstructure:"delay"`
}

type constantPayload struct {
	Delay      time.Duration `mapstructure:"delay"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type exponentialPayload struct {
	Delay      time.Duration `mapstructure:"delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// Decode selects a strategy from a tagged configuration block.
func Decode(raw map[string]interface{}) (Strategy, error) {
	kind, ok := raw["retry"].(string)
	if !ok || kind == "" {
		return nil, cfgerrors.DecodeError{
			Field:   "retry",
			Message: "required field is absent",
		}
	}

	switch Kind(kind) {
	case KindNever:
		// No further fields are consulted.
		return GiveUp{}, nil

	case KindOnce:
		var p oncePayload
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		if err := checkDelay("delay", p.Delay); err != nil {
			return nil, err
		}
		return Once{Delay: p.Delay}, nil

	case KindConstant:
		var p constantPayload
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		if err := checkDelay("delay", p.Delay); err != nil {
			return nil, err
		}
		if err := checkMaxRetries(p.MaxRetries); err != nil {
			return nil, err
		}
		return Constant{Delay: p.Delay, MaxRetries: p.MaxRetries}, nil

	case KindExponential:
		var p exponentialPayload
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		if err := checkDelay("delay", p.Delay); err != nil {
			return nil, err
		}
		if err := checkDelay("max_delay", p.MaxDelay); err != nil {
			return nil, err
		}
		if p.MaxDelay < p.Delay {
			return nil, cfgerrors.InvariantViolationError{
				Field:   "max_delay",
				Message: "maximum delay must not be smaller than the initial delay",
			}
		}
		if err := checkMaxRetries(p.MaxRetries); err != nil {
			return nil, err
		}
		return Exponential{Delay: p.Delay, MaxDelay: p.MaxDelay, MaxRetries: p.MaxRetries}, nil

	default:
		return nil, cfgerrors.UnknownDiscriminatorError{
			Field:   "retry",
			Value:   kind,
			Allowed: Kinds(),
		}
	}
}

func decodePayload(raw map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		TagName:    "mapstructure",
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return cfgerrors.DecodeError{Message: "failed to build decoder", Err: err}
	}
	if err := dec.Decode(raw); err != nil {
		return cfgerrors.DecodeError{Message: "malformed retry configuration", Err: err}
	}
	return nil
}

func checkDelay(field string, d time.Duration) error {
	if d <= 0 {
		return cfgerrors.DecodeError{
			Field:   field,
			Value:   d.String(),
			Message: "expected a positive duration",
		}
	}
	return nil
}

func checkMaxRetries(n int) error {
	if n <= 0 {
		return cfgerrors.DecodeError{
			Field:   "max_retries",
			Value:   n,
			Message: "expected a positive integer",
		}
	}
	return nil
}
