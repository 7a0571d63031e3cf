package geoip

import (
	"context"
	"errors"
	"fmt"

	"gourmet/internal/domain"
)

// Chain tries each configured locator in order.
type Chain []Locator

func (c Chain) Locate(ctx context.Context, ip string) (domain.LatLng, error) {
	var errs []error
	for _, l := range c {
		if l == nil {
			continue
		}
		loc, err := l.Locate(ctx, ip)
		if err == nil {
			return loc, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return domain.LatLng{}, ErrUnavailable
	}
	return domain.LatLng{}, errors.Join(errs...)
}

// LocateCaller never fails: an unresolvable caller is placed at 0,0 and one
// error notice is reported.
func LocateCaller(ctx context.Context, locator Locator, ip string, reporter domain.Reporter) domain.LatLng {
	if reporter == nil {
		reporter = domain.Discard
	}
	var (
		loc domain.LatLng
		err = ErrUnavailable
	)
	if locator != nil {
		loc, err = locator.Locate(ctx, ip)
	}
	if err != nil {
		reporter.Report(domain.Notice{
			Level:   domain.NoticeError,
			Source:  "location",
			Message: fmt.Sprintf("Could not determine location: %v", err),
		})
		return domain.LatLng{}
	}
	return loc
}

var _ Locator = Chain(nil)
