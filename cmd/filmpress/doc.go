// Command filmpress probes media files and batch-converts them with ffmpeg.
package main
