package main

import (
	"github.com/pkg/errors"
	"github.com/pkg/profile"
)

var profileModes = map[string]func(p *profile.Profile){
	"cpu":    profile.CPUProfile,
	"mem":    profile.MemProfile,
	"mutex":  profile.MutexProfile,
	"block":  profile.BlockProfile,
	"thread": profile.ThreadcreationProfile,
	"trace":  profile.TraceProfile,
}

// debugStartProfile starts recording the named profile, the caller must Stop it before exiting
func debugStartProfile(prof, profPath string) (interface{ Stop() }, error) {
	mode, ok := profileModes[prof]
	if !ok {
		return nil, errors.Errorf("unknown profile type %q", prof)
	}

	popts := []func(p *profile.Profile){mode, profile.NoShutdownHook}

	if profPath != "" {
		popts = append(popts, profile.ProfilePath(profPath), profile.Quiet)
	}

	return profile.Start(popts...), nil
}
