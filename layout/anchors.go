package layout

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// Pattern score buckets. The fixed set mirrors the grading used by the
// question-number heuristics: an OCR string either matches a canonical
// numbering pattern exactly, matches with extra structure around it, barely
// survives the noise, or contradicts anchor semantics entirely.
const (
	PatternScoreNone       = 0.0
	PatternScoreWeak       = 0.5
	PatternScoreStructured = 0.8
	PatternScoreExact      = 1.0
)

// AnchorConfig holds configuration for anchor extraction and confidence fusion.
type AnchorConfig struct {
	// AcceptThreshold is the minimum fused confidence
	// (detector * ocr * pattern) for an element to be accepted as anchor.
	// Default: 0.65
	AcceptThreshold float64
}

// DefaultAnchorConfig returns sensible default configuration
func DefaultAnchorConfig() AnchorConfig {
	return AnchorConfig{
		AcceptThreshold: 0.65,
	}
}

// AnchorExtractor decides which detected elements are true question markers
// by fusing three independent confidence signals: the layout detector's
// confidence, the OCR engine's confidence, and a pattern score from matching
// the OCR text against expected question-numbering shapes.
//
// This is the only place where detector/OCR noise is resolved into a binary
// accept/reject decision. A rejected element is not discarded: it becomes an
// ordinary child candidate for spatial assignment.
type AnchorExtractor struct {
	config AnchorConfig
}

// NewAnchorExtractor creates a new anchor extractor with default configuration
func NewAnchorExtractor() *AnchorExtractor {
	return &AnchorExtractor{
		config: DefaultAnchorConfig(),
	}
}

// NewAnchorExtractorWithConfig creates an anchor extractor with custom configuration
func NewAnchorExtractorWithConfig(config AnchorConfig) *AnchorExtractor {
	return &AnchorExtractor{
		config: config,
	}
}

// Question-numbering patterns, from strongest to weakest. Matched after
// normalizing full-width and circled digits to ASCII.
var (
	// "12", "12.", "12)", "(12)", "№12", "12、"
	exactPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\d{1,3})$`),
		regexp.MustCompile(`^(\d{1,3})[.)、]$`),
		regexp.MustCompile(`^\((\d{1,3})\)$`),
		regexp.MustCompile(`^№\s?(\d{1,3})$`),
	}

	// "12.3", "12-3", "12.3)", or a canonical marker followed by text
	// ("12. Solve the equation").
	structuredPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\d{1,3})[.\-](\d{1,2})[.)]?$`),
		regexp.MustCompile(`^(\d{1,3})[.)、]\s+\S`),
	}

	// A leading integer surviving OCR noise: at most two junk runes before
	// the digits and arbitrary trailing junk ("*12~", "|3").
	weakPattern = regexp.MustCompile(`^[^\d①-⑳]{0,2}(\d{1,3})\D*$`)

	subNumberPattern = regexp.MustCompile(`^(\d{1,3})[.\-](\d{1,2})`)
)

// circledDigits maps enclosed-number runes to their values. Width
// normalization does not touch these, so they are resolved explicitly.
var circledDigits = map[rune]int{}

func init() {
	for i := 0; i < 20; i++ {
		circledDigits[rune(0x2460+i)] = i + 1 // ① .. ⑳
		circledDigits[rune(0x2474+i)] = i + 1 // ⑴ .. ⒇
		circledDigits[rune(0x2488+i)] = i + 1 // ⒈ .. ⒛
	}
}

// normalizeNumberingText prepares OCR text for pattern matching: trims
// whitespace, narrows full-width digits and punctuation ("１２．" -> "12."),
// and replaces a lone circled digit with its plain form.
func normalizeNumberingText(s string) string {
	s = strings.TrimSpace(s)
	s = width.Narrow.String(s)

	runes := []rune(s)
	if len(runes) == 1 {
		if v, ok := circledDigits[runes[0]]; ok {
			return strconv.Itoa(v)
		}
	}
	return s
}

// PatternScore grades the OCR text against the expected question-numbering
// patterns and parses the question number when one is present.
//
// Returned scores come from the fixed bucket set:
//
//	1.0  exact canonical marker ("12", "12.", "12)", "(12)", "①")
//	0.8  structured marker: sub-numbered ("12.3") or marker plus inline text
//	0.5  weak: an isolated leading integer surviving OCR noise
//	0.0  no digits, or text that contradicts anchor semantics
func (e *AnchorExtractor) PatternScore(ocrText string) (score float64, number, sub int, ok bool) {
	text := normalizeNumberingText(ocrText)
	if text == "" {
		return PatternScoreNone, 0, 0, false
	}

	for _, p := range exactPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			return PatternScoreExact, n, 0, true
		}
	}

	for _, p := range structuredPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			s := 0
			if sm := subNumberPattern.FindStringSubmatch(text); sm != nil {
				s, _ = strconv.Atoi(sm[2])
			}
			return PatternScoreStructured, n, s, true
		}
	}

	if m := weakPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return PatternScoreWeak, n, 0, true
	}

	return PatternScoreNone, 0, 0, false
}

// FuseConfidence computes the fused confidence for the given signal triple.
// Exposed so the acceptance boundary can be tested against literal triples.
func FuseConfidence(detector, ocr, pattern float64) float64 {
	return detector * ocr * pattern
}

// Extract evaluates a single element as an anchor candidate. It returns the
// candidate and true when the element's class is an anchor class and its
// fused confidence clears the acceptance threshold.
//
// Policy: when the element was never OCR'd, the OCR confidence is taken as
// 1.0, so the decision rests on detector confidence and pattern score alone.
// This is deliberate: the absence of an OCR result means the OCR collaborator
// skipped the region, not that the region is untrustworthy.
func (e *AnchorExtractor) Extract(elem model.LayoutElement) (model.AnchorCandidate, bool) {
	if !elem.Class.IsAnchorClass() {
		return model.AnchorCandidate{}, false
	}

	ocrConf := 1.0
	if elem.HasOCR {
		ocrConf = elem.OCRConfidence
	}

	patternScore, number, sub, hasNumber := e.PatternScore(elem.OCRText)
	if !elem.HasOCR && elem.OCRText == "" {
		// Detector-only candidate: no text to grade, so the pattern signal
		// is neutral rather than contradicting.
		patternScore, hasNumber = PatternScoreExact, false
	}

	fused := FuseConfidence(elem.DetectorConfidence, ocrConf, patternScore)
	if fused < e.config.AcceptThreshold {
		return model.AnchorCandidate{}, false
	}

	return model.AnchorCandidate{
		Element:            elem,
		DetectorConfidence: elem.DetectorConfidence,
		OCRConfidence:      ocrConf,
		PatternScore:       patternScore,
		FusedConfidence:    fused,
		QuestionNumber:     number,
		SubNumber:          sub,
		HasNumber:          hasNumber,
		ColumnIndex:        -1,
	}, true
}

// ExtractAll partitions elements into accepted anchor candidates and the
// remaining elements. Rejected anchor-class elements appear in rest in their
// original position and stay eligible for child assignment.
func (e *AnchorExtractor) ExtractAll(elements []model.LayoutElement) ([]model.AnchorCandidate, []model.LayoutElement) {
	var anchors []model.AnchorCandidate
	var rest []model.LayoutElement

	for _, elem := range elements {
		if candidate, ok := e.Extract(elem); ok {
			anchors = append(anchors, candidate)
		} else {
			rest = append(rest, elem)
		}
	}
	return anchors, rest
}

// ResolveDuplicates settles conflicting anchor candidates: when two accepted
// candidates in the same column claim the same question number, the one with
// the higher fused confidence wins; ties fall to the higher detector
// confidence, then the lower element id. Losers are demoted to ordinary
// elements (returned in original candidate order), not dropped.
//
// Candidates must already carry their ColumnIndex.
func ResolveDuplicates(candidates []model.AnchorCandidate) (kept []model.AnchorCandidate, demoted []model.LayoutElement) {
	type key struct {
		column, number, sub int
	}

	winners := make(map[key]int) // key -> index into candidates
	loser := make([]bool, len(candidates))

	for i, c := range candidates {
		if !c.HasNumber {
			continue // unnumbered anchors never conflict
		}
		k := key{c.ColumnIndex, c.QuestionNumber, c.SubNumber}
		prev, seen := winners[k]
		if !seen {
			winners[k] = i
			continue
		}
		if outranks(c, candidates[prev]) {
			loser[prev] = true
			winners[k] = i
		} else {
			loser[i] = true
		}
	}

	for i, c := range candidates {
		if loser[i] {
			demoted = append(demoted, c.Element)
		} else {
			kept = append(kept, c)
		}
	}
	return kept, demoted
}

// outranks reports whether candidate a beats candidate b in a duplicate
// question-number conflict.
func outranks(a, b model.AnchorCandidate) bool {
	if a.FusedConfidence != b.FusedConfidence {
		return a.FusedConfidence > b.FusedConfidence
	}
	if a.DetectorConfidence != b.DetectorConfidence {
		return a.DetectorConfidence > b.DetectorConfidence
	}
	return a.Element.ID < b.Element.ID
}

// SortAnchorsByPosition orders candidates by (column, y1, x1, id). This is
// the base ordering used before any strategy runs and the final tie-break
// everywhere, so the overall ordering stays total and deterministic.
func SortAnchorsByPosition(anchors []model.AnchorCandidate) {
	sort.SliceStable(anchors, func(i, j int) bool {
		a, b := anchors[i], anchors[j]
		if a.ColumnIndex != b.ColumnIndex {
			return a.ColumnIndex < b.ColumnIndex
		}
		if a.Element.BBox.Y1 != b.Element.BBox.Y1 {
			return a.Element.BBox.Y1 < b.Element.BBox.Y1
		}
		if a.Element.BBox.X1 != b.Element.BBox.X1 {
			return a.Element.BBox.X1 < b.Element.BBox.X1
		}
		return a.Element.ID < b.Element.ID
	})
}
