package parse

import "regexp"

// roomFamilies cover residential and light-commercial space labels. The
// multi-word patterns come first in each alternation so "LIVING ROOM"
// reports as one label rather than a bare "ROOM".
var roomFamilies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:MASTER\s+(?:BEDROOM|BATH(?:ROOM)?|SUITE)|BEDROOM\s*#?\s*\d*|BED\s*RM\.?\s*\d*)\b`),
	regexp.MustCompile(`(?i)\b(?:BATHROOM|BATH\s*#?\s*\d*|POWDER\s+ROOM|HALF\s+BATH)\b`),
	regexp.MustCompile(`(?i)\b(?:KITCHEN|PANTRY|NOOK|DINING\s+(?:ROOM|AREA)|BREAKFAST)\b`),
	regexp.MustCompile(`(?i)\b(?:LIVING\s+(?:ROOM|AREA)|FAMILY\s+ROOM|GREAT\s+ROOM|DEN|STUDY|OFFICE|LIBRARY|BONUS\s+ROOM|MEDIA\s+ROOM|REC(?:REATION)?\s+ROOM)\b`),
	regexp.MustCompile(`(?i)\b(?:GARAGE|CARPORT|SHOP|WORKSHOP)\b`),
	regexp.MustCompile(`(?i)\b(?:LAUNDRY|MUD\s*ROOM|UTILITY|MECHANICAL|MECH\.?\s+RM\.?|STORAGE|CLOSET|WIC|W\.I\.C\.?)\b`),
	regexp.MustCompile(`(?i)\b(?:FOYER|ENTRY|HALL(?:WAY)?|STAIRS?|LANDING|LOFT|ATTIC|BASEMENT|CRAWL\s*SPACE)\b`),
	regexp.MustCompile(`(?i)\b(?:PORCH|DECK|PATIO|BALCONY|COVERED\s+(?:PORCH|PATIO|ENTRY))\b`),
	// Light commercial
	regexp.MustCompile(`(?i)\b(?:LOBBY|CORRIDOR|RESTROOM|BREAK\s+ROOM|CONFERENCE|RECEPTION|JANITOR|VESTIBULE|STOR\.?\s+RM\.?)\b`),
}

// Rooms extracts room and space labels from the text, deduplicated
// case-insensitively with the first spelling kept, sorted on output.
func Rooms(text string) []string {
	return collectMatches(Normalize(text), roomFamilies)
}
