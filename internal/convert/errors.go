package convert

import "errors"

// ErrSpawn marks a transcoder process that could not be started at all
// (binary missing, permission denied). It is distinct from a transcode
// failure: the job never reached the running state.
var ErrSpawn = errors.New("transcoder failed to start")
