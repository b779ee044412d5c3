// Package render composes finished narration videos with ffmpeg: the ordered
// audio segments are concatenated into one track, the still image is looped
// for the track's duration at 24 fps, and the two caption lines are drawn
// near the bottom-left of the frame.
//
// Prefer this package over ad-hoc exec.Command usage when interacting with
// ffmpeg or ffprobe.
package render
