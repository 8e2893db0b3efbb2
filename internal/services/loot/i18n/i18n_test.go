package i18n

import (
	"testing"

	lootcatalog "github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

func TestNewResolvesLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "en-US", want: "en-US"},
		{in: "pt-BR", want: "pt-BR"},
		{in: "", want: "en-US"},
		{in: "not a locale", want: "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := New(tt.in).Locale(); got != tt.want {
				t.Fatalf("Locale() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryLabels(t *testing.T) {
	money, _ := lootcatalog.Default().Category("money")
	if got := New("en-US").CategoryLabel(money); got != "Money" {
		t.Fatalf("en-US money = %q", got)
	}
	if got := New("pt-BR").CategoryLabel(money); got != "Dinheiro" {
		t.Fatalf("pt-BR money = %q", got)
	}

	tests := []struct {
		name     string
		category lootcatalog.Category
		want     string
	}{
		{name: "unknown id", category: lootcatalog.Category{ID: "relics", Label: "Relics"}, want: "Relics"},
		{name: "relabelled id", category: lootcatalog.Category{ID: "money", Label: "Coins"}, want: "Coins"},
		{name: "percent in id", category: lootcatalog.Category{ID: "50%_off", Label: "Half Off"}, want: "Half Off"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New("pt-BR").CategoryLabel(tt.category); got != tt.want {
				t.Fatalf("CategoryLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateLabelKeepsCustomLabel(t *testing.T) {
	gold := lootcatalog.Template{ID: "gold_1", Label: "1 Coin"}
	if got := New("pt-BR").TemplateLabel(gold); got != "1 Coin" {
		t.Fatalf("TemplateLabel = %q, want 1 Coin", got)
	}
	odd := lootcatalog.Template{ID: "%v", Label: "Odd"}
	if got := New("en-US").TemplateLabel(odd); got != "Odd" {
		t.Fatalf("TemplateLabel = %q, want Odd", got)
	}
}

func TestTokenLabels(t *testing.T) {
	l := New("en-US")
	got := l.TokenLabels(lootcatalog.Default(), []string{"gold_2", "random_item", "mystery"})
	want := []string{"2 Gold", "Random Item", "mystery"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
	if pt := New("pt-BR").TokenLabel(lootcatalog.Default(), "hide_1"); pt != "1 Couro" {
		t.Fatalf("pt-BR hide_1 = %q", pt)
	}
}

func TestText(t *testing.T) {
	if got := New("en-US").Text("configured", 17); got != "Configured size: 17" {
		t.Fatalf("en-US configured = %q", got)
	}
	if got := New("pt-BR").Text("configured", 17); got != "Tamanho configurado: 17" {
		t.Fatalf("pt-BR configured = %q", got)
	}
}
