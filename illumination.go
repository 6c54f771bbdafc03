package lunarglide

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/lunarglide/internal/illum"
)

// MoonIllumination returns the illuminated fraction of the Moon's disk,
// in [0, 1], at each of times, using the observer's ephemeris source.
//
// It is exactly MoonIlluminationFrom(o.Moon(times), o.Sun(times)).
func (o *Observer) MoonIllumination(times []time.Time) ([]float64, error) {
	moon, sun, err := o.positions(times)
	if err != nil {
		return nil, err
	}
	return MoonIlluminationFrom(moon, sun)
}

// MoonIlluminationFrom returns the illuminated fraction for Moon and Sun
// positions computed beforehand. The observer does not influence the
// result: illumination is a geocentric quantity.
func (o *Observer) MoonIlluminationFrom(moon, sun []Position) ([]float64, error) {
	return MoonIlluminationFrom(moon, sun)
}

// MoonIlluminationFrom returns the illuminated fraction for each pair of
// Moon and Sun positions. The slices must be parallel: same length, Moon
// positions in moon and Sun positions in sun.
func MoonIlluminationFrom(moon, sun []Position) ([]float64, error) {
	angles, err := phaseAngles(moon, sun)
	if err != nil {
		return nil, err
	}
	for i, a := range angles {
		angles[i] = illum.Fraction(a)
	}
	return angles, nil
}

// MoonPhaseAngle returns the Sun–Moon–Earth angle in degrees [0, 180] at
// each of times: 0 at full Moon, 180 at new Moon.
func (o *Observer) MoonPhaseAngle(times []time.Time) ([]float64, error) {
	moon, sun, err := o.positions(times)
	if err != nil {
		return nil, err
	}
	return phaseAngles(moon, sun)
}

// MoonAltAz returns the Moon's apparent topocentric altitude and azimuth at
// t, refracted according to the observer's pressure and temperature.
func (o *Observer) MoonAltAz(t time.Time) (Horizontal, error) {
	moon, err := o.Moon([]time.Time{t})
	if err != nil {
		return Horizontal{}, err
	}
	return moon[0].AltAz(o.Temperature)
}

func (o *Observer) positions(times []time.Time) (moon, sun []Position, err error) {
	moon, err = o.Moon(times)
	if err != nil {
		return nil, nil, err
	}
	sun, err = o.Sun(times)
	if err != nil {
		return nil, nil, err
	}
	return moon, sun, nil
}

func phaseAngles(moon, sun []Position) ([]float64, error) {
	if len(moon) != len(sun) {
		return nil, fmt.Errorf("%w: %d moon, %d sun", ErrLengthMismatch, len(moon), len(sun))
	}

	out := make([]float64, len(moon))
	for i := range moon {
		if moon[i].Body != Moon {
			return nil, fmt.Errorf("%w: moon[%d] is %s", ErrBodyMismatch, i, moon[i].Body)
		}
		if sun[i].Body != Sun {
			return nil, fmt.Errorf("%w: sun[%d] is %s", ErrBodyMismatch, i, sun[i].Body)
		}
		out[i] = illum.PhaseAngle(moon[i].state(), sun[i].state())
	}
	return out, nil
}
