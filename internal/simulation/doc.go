// Package simulation owns the mutable body set of a run and drives the
// physics engine one fixed timestep per frame.
//
// A Driver registers the environment's segments with the engine once, spawns
// bodies on request and assigns them dense identifiers in spawn order. That
// order is authoritative for every later enumeration: nothing here re-sorts
// bodies by position.
//
// A Runner is the batch front end: it triggers spawns from a SpawnPolicy on a
// fixed frame schedule and stops on a frame budget, an idle window, or context
// cancellation. A stopped run still reports the state it reached.
//
// Usage:
//
//	driver := simulation.NewDriver(env, physics.NewChipmunkEngine(spaceParams), params)
//	policy, err := simulation.NewBandPolicy(simulation.NewRand(seed), band)
//	if err != nil {
//	    return err
//	}
//	runner := &simulation.Runner{
//	    Driver:   driver,
//	    Policy:   policy,
//	    Schedule: simulation.Schedule{Bodies: 40, Every: 10},
//	    Stop:     simulation.StopPolicy{MaxFrames: 3600, IdleFrames: 240},
//	}
//	result := runner.Run(ctx)
package simulation
