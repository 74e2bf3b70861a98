package reports

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("Продукты и хозяйственные товары ", 4)

	got := truncate(long, 30)
	if got == long {
		t.Fatal("длинное значение должно обрезаться")
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("обрезанное значение должно оканчиваться многоточием: %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("обрезка порвала многобайтовый символ: %q", got)
	}

	if got := truncate("метро", 30); got != "метро" {
		t.Errorf("короткое значение изменено: %q", got)
	}
}
