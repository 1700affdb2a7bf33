package helper

import "testing"

func TestSecureFilename(t *testing.T) {
	type test struct {
		testcase string
		input    string
		expected string
	}
	tests := []test{
		{testcase: "Plain", input: "input.wav", expected: "input.wav"},
		{testcase: "Spaces", input: "My cool movie.wav", expected: "My_cool_movie.wav"},
		{testcase: "Traversal", input: "../../../etc/passwd", expected: "etc_passwd"},
		{testcase: "Backslash", input: `C:\sounds\a.wav`, expected: "C_sounds_a.wav"},
		{testcase: "Accents", input: "café.wav", expected: "cafe.wav"},
		{testcase: "Symbols", input: "a$b%c!.wav", expected: "abc.wav"},
		{testcase: "LeadingDots", input: "..hidden.wav", expected: "hidden.wav"},
		{testcase: "OnlyUnsafe", input: "ü", expected: "u"},
		{testcase: "Empty", input: "日本", expected: ""},
	}
	for _, tc := range tests {
		if got := SecureFilename(tc.input); got != tc.expected {
			t.Errorf("[%v] Expected: %q, Got: %q", tc.testcase, tc.expected, got)
		}
	}
}

func TestAllowedFile(t *testing.T) {
	tests := map[string]bool{
		"a.wav":           true,
		"A.WAV":           true,
		"a.b.Wav":         true,
		"a.mp3":           false,
		"wav":             false,
		"":                false,
		"archive.wav.zip": false,
	}
	for name, want := range tests {
		if got := AllowedFile(name); got != want {
			t.Errorf("AllowedFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsSafeName(t *testing.T) {
	tests := map[string]bool{
		"abc_volume_2.0.wav": true,
		"":                   false,
		"..":                 false,
		"../secret":          false,
		"a/b.wav":            false,
		`a\b.wav`:            false,
		"a..b.wav":           false,
	}
	for name, want := range tests {
		if got := IsSafeName(name); got != want {
			t.Errorf("IsSafeName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFormatFactor(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{1, "1.0"},
		{0.5, "0.5"},
		{1.25, "1.25"},
		{0.1, "0.1"},
		{100, "100.0"},
		{1e16, "1e+16"},
		{0.00001, "1e-05"},
	}
	for _, tt := range tests {
		if got := FormatFactor(tt.in); got != tt.want {
			t.Errorf("FormatFactor(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	if got := OutputName("id", "pitch", 1.5); got != "id_pitch_1.5.wav" {
		t.Errorf("OutputName = %q", got)
	}
	if got := UploadName("id", "a.wav"); got != "id_a.wav" {
		t.Errorf("UploadName = %q", got)
	}
}
