package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// defaultRegionScores - вклад региона в итоговый балл (20% шкалы), по штатам.
var defaultRegionScores = map[string]float64{
	"UTTAR PRADESH":               20.0,
	"MADHYA PRADESH":              18.54,
	"MAHARASHTRA":                 17.65,
	"ANDHRA PRADESH":              16.72,
	"TAMIL NADU":                  11.96,
	"RAJASTHAN":                   11.07,
	"WEST BENGAL":                 9.62,
	"KARNATAKA":                   9.58,
	"ASSAM":                       9.36,
	"KERALA":                      8.21,
	"ODISHA":                      8.08,
	"BIHAR":                       7.92,
	"HARYANA":                     6.30,
	"PUNJAB":                      5.92,
	"CHHATTISGARH":                5.26,
	"DELHI":                       4.57,
	"DELHI UT":                    4.57,
	"NCT OF DELHI":                4.57,
	"JHARKHAND":                   4.42,
	"GUJARAT":                     4.09,
	"TELANGANA":                   3.70,
	"JAMMU & KASHMIR":             2.96,
	"JAMMU AND KASHMIR":           2.96,
	"TRIPURA":                     2.86,
	"UTTARAKHAND":                 2.55,
	"NAGALAND":                    1.92,
	"SIKKIM":                      1.39,
	"HIMACHAL PRADESH":            1.18,
	"D&N HAVELI":                  0.82,
	"DADRA AND NAGAR HAVELI":      0.82,
	"GOA":                         0.44,
	"MEGHALAYA":                   0.34,
	"DAMAN AND DIU":               0.32,
	"MANIPUR":                     0.26,
	"ARUNACHAL PRADESH":           0.26,
	"CHANDIGARH":                  0.23,
	"MIZORAM":                     0.22,
	"ANDAMAN AND NICOBAR ISLANDS": 0.11,
	"PUDUCHERRY":                  0.11,
	"LAKSHADWEEP":                 0.004,
}

type regionEntry struct {
	name  string
	score float64
}

// RegionTable - неизменяемая таблица региональных оценок
type RegionTable struct {
	exact   map[string]float64
	ordered []regionEntry
}

// NewRegionTable строит таблицу из map. Имена приводятся к верхнему регистру.
func NewRegionTable(scores map[string]float64) (*RegionTable, error) {
	t := &RegionTable{
		exact:   make(map[string]float64, len(scores)),
		ordered: make([]regionEntry, 0, len(scores)),
	}
	for name, score := range scores {
		if score < 0 || score > maxDatasetScore {
			return nil, fmt.Errorf("region %q: score %v outside [0, %d]", name, score, maxDatasetScore)
		}
		key := normalizeRegion(name)
		if key == "" {
			continue
		}
		t.exact[key] = score
		t.ordered = append(t.ordered, regionEntry{name: key, score: score})
	}
	// Нечеткий поиск должен быть детерминированным: длинные имена проверяются первыми.
	sort.Slice(t.ordered, func(i, j int) bool {
		if len(t.ordered[i].name) != len(t.ordered[j].name) {
			return len(t.ordered[i].name) > len(t.ordered[j].name)
		}
		return t.ordered[i].name < t.ordered[j].name
	})
	return t, nil
}

// DefaultRegionTable возвращает встроенную таблицу
func DefaultRegionTable() *RegionTable {
	t, err := NewRegionTable(defaultRegionScores)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadRegionTable читает таблицу из YAML файла вида:
//
//	regions:
//	  UTTAR PRADESH: 20.0
//	  DELHI: 4.57
func LoadRegionTable(path string) (*RegionTable, error) {
	k := koanf.New("::")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load region dataset %s: %w", path, err)
	}

	scores := make(map[string]float64)
	if err := k.Unmarshal("regions", &scores); err != nil {
		return nil, fmt.Errorf("failed to decode region dataset %s: %w", path, err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("region dataset %s has no regions", path)
	}
	return NewRegionTable(scores)
}

// RegionScore ищет оценку региона: точное совпадение без учета регистра,
// затем вхождение подстроки в любую сторону. Неизвестный регион дает 0.
func (t *RegionTable) RegionScore(region string) float64 {
	key := normalizeRegion(region)
	if key == "" {
		return 0
	}
	if score, ok := t.exact[key]; ok {
		return score
	}
	for _, e := range t.ordered {
		if strings.Contains(key, e.name) || strings.Contains(e.name, key) {
			return e.score
		}
	}
	return 0
}

// Len - количество регионов в таблице
func (t *RegionTable) Len() int {
	return len(t.ordered)
}

func normalizeRegion(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
