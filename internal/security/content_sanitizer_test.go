package security

import "testing"

// 全HTMLタグが除去されることを検証
func TestTextSanitizer_RemovesAllTags(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "scriptタグの除去",
			input: `毎朝走る<script>alert("xss")</script>`,
			want:  "毎朝走る",
		},
		{
			name:  "通常のタグも除去",
			input: "<b>早寝</b>を<em>習慣</em>にする",
			want:  "早寝を習慣にする",
		},
		{
			name:  "プレーンテキストはそのまま",
			input: "23時に就寝する",
			want:  "23時に就寝する",
		},
		{
			name:  "前後の空白を除去",
			input: "  日記を書く  ",
			want:  "日記を書く",
		},
		{
			name:  "空文字列",
			input: "",
			want:  "",
		},
		{
			name:  "imgタグのイベント属性ごと除去",
			input: `<img src=x onerror=alert(1)>振り返り`,
			want:  "振り返り",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// エスケープ済み文字がプレーンテキストに戻ることを検証
func TestTextSanitizer_UnescapesEntities(t *testing.T) {
	s := NewTextSanitizer()

	got := s.Sanitize("A & B を両立する")
	if got != "A & B を両立する" {
		t.Errorf("Sanitize = %q, want %q", got, "A & B を両立する")
	}
}

// 同一入力に対して冪等であることを検証
func TestTextSanitizer_Idempotent(t *testing.T) {
	s := NewTextSanitizer()

	input := "<p>週3回自炊する</p>"
	once := s.Sanitize(input)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("Sanitize is not idempotent: once=%q twice=%q", once, twice)
	}
}
