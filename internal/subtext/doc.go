// Package subtext guesses the character encoding of subtitle files so ffmpeg
// can be told what to convert from.
package subtext
