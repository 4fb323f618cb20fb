// Package ffmpeg builds and runs the per-file ffmpeg conversion.
//
// Every job gets the same argument skeleton: map all streams, re-encode
// video with libx264 at CRF 18, copy audio and subtitles, force yuv420p, and
// write h264_<name> next to the source. The command is executed directly
// (no shell) and classified purely by its exit status.
package ffmpeg
