package container

import (
	"reflect"
	"testing"

	"filmpress/internal/config"
)

func testEncoding() config.Encoding {
	return config.Encoding{
		OutputExtension: ".mp4",
		VideoCodec:      "h264",
		VideoEncoder:    "libx264",
		CRF:             18,
		Preset:          "slow",
		PixelFormat:     "yuv420p",
		AudioCodec:      "aac",
		AudioBitrate:    384,
		SubtitleCodec:   "mov_text",
	}
}

func intPtr(v int) *int { return &v }

func TestVideoStreamCopiesMatchingCodec(t *testing.T) {
	stream := Stream{Index: 0, Kind: KindVideo, Codec: "h264"}
	options := stream.BuildOptions(0, testEncoding())
	want := []string{"-c:v:0", "copy"}
	if !reflect.DeepEqual(options, want) {
		t.Fatalf("unexpected options: %v", options)
	}
	if stream.OptionSummary() != "copy" {
		t.Fatalf("unexpected summary: %q", stream.OptionSummary())
	}
}

func TestVideoStreamTranscodesForeignCodec(t *testing.T) {
	stream := Stream{Index: 0, Kind: KindVideo, Codec: "vp8"}
	options := stream.BuildOptions(0, testEncoding())
	want := []string{"-c:v:0", "libx264", "-preset", "slow", "-crf", "18", "-pix_fmt", "yuv420p"}
	if !reflect.DeepEqual(options, want) {
		t.Fatalf("unexpected options: %v", options)
	}
	if stream.OptionSummary() != "transcode -> h264, crf=18" {
		t.Fatalf("unexpected summary: %q", stream.OptionSummary())
	}
}

func TestVideoStreamCustomCRFForcesTranscode(t *testing.T) {
	// a CRF override transcodes even when the source codec already matches
	stream := Stream{Index: 0, Kind: KindVideo, Codec: "h264", CustomCRF: intPtr(23)}
	options := stream.BuildOptions(1, testEncoding())
	want := []string{"-c:v:1", "libx264", "-preset", "slow", "-crf", "23", "-pix_fmt", "yuv420p"}
	if !reflect.DeepEqual(options, want) {
		t.Fatalf("unexpected options: %v", options)
	}
	if stream.OptionSummary() != "transcode -> h264, crf=23" {
		t.Fatalf("unexpected summary: %q", stream.OptionSummary())
	}
}

func TestVideoStreamCRFZeroIsHonoured(t *testing.T) {
	stream := Stream{Index: 0, Kind: KindVideo, Codec: "h264", CustomCRF: intPtr(0)}
	options := stream.BuildOptions(0, testEncoding())
	if options[4] != "-crf" || options[5] != "0" {
		t.Fatalf("crf=0 override lost: %v", options)
	}
}

func TestAudioStreamCopiesMatchingCodec(t *testing.T) {
	stream := Stream{Index: 1, Kind: KindAudio, Codec: "aac"}
	options := stream.BuildOptions(0, testEncoding())
	want := []string{"-c:a:0", "copy"}
	if !reflect.DeepEqual(options, want) {
		t.Fatalf("unexpected options: %v", options)
	}
}

func TestAudioBitrateResolutionOrder(t *testing.T) {
	cases := []struct {
		name   string
		stream Stream
		want   string
	}{
		{
			name:   "override wins over source and default",
			stream: Stream{Kind: KindAudio, Codec: "vorbis", CustomBitrate: intPtr(128), Labels: StreamLabels{Bitrate: 250}},
			want:   "128k",
		},
		{
			name:   "source bitrate wins over default",
			stream: Stream{Kind: KindAudio, Codec: "vorbis", Labels: StreamLabels{Bitrate: 250}},
			want:   "250k",
		},
		{
			name:   "default used when nothing else is known",
			stream: Stream{Kind: KindAudio, Codec: "vorbis"},
			want:   "384k",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			options := tc.stream.BuildOptions(0, testEncoding())
			want := []string{"-c:a:0", "aac", "-b:a:0", tc.want}
			if !reflect.DeepEqual(options, want) {
				t.Fatalf("unexpected options: %v", options)
			}
		})
	}
}

func TestAudioSlotNumberAppearsInBitrateFlag(t *testing.T) {
	stream := Stream{Kind: KindAudio, Codec: "vorbis"}
	options := stream.BuildOptions(1, testEncoding())
	want := []string{"-c:a:1", "aac", "-b:a:1", "384k"}
	if !reflect.DeepEqual(options, want) {
		t.Fatalf("unexpected options: %v", options)
	}
}

func TestSubtitleStreamAlwaysTranscodes(t *testing.T) {
	stream := Stream{Kind: KindSubtitle, Codec: "mov_text"}
	options := stream.BuildOptions(0, testEncoding())
	want := []string{"-c:s:0", "mov_text"}
	if !reflect.DeepEqual(options, want) {
		t.Fatalf("unexpected options: %v", options)
	}
	if stream.OptionSummary() != "transcode -> mov_text" {
		t.Fatalf("unexpected summary: %q", stream.OptionSummary())
	}
}

func TestKindSupported(t *testing.T) {
	for _, kind := range []Kind{KindVideo, KindAudio, KindSubtitle} {
		if !kind.Supported() {
			t.Fatalf("%s should be supported", kind)
		}
	}
	for _, kind := range []Kind{"data", "attachment", ""} {
		if kind.Supported() {
			t.Fatalf("%q should not be supported", kind)
		}
	}
}
