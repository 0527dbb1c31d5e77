package parsers

// ParseSchedule extracts the opening and closing time from a schedule text.
//
// All HHhMM tokens are scanned left to right. With no token both values are
// empty, with one token both values are that token, otherwise the first
// token opens and the last one closes. Tokens in between are ignored.
func (p *Parser) ParseSchedule(v any) (opening, closing string) {
	s, ok := text(v)
	if !ok {
		return "", ""
	}

	tokens := p.timePattern.FindAllString(s, -1)

	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], tokens[0]
	default:
		return tokens[0], tokens[len(tokens)-1]
	}
}

// ExtractDuration returns the first HHhMM token of v.
func (p *Parser) ExtractDuration(v any) string {
	s, ok := text(v)
	if !ok {
		return ""
	}

	return p.timePattern.FindString(s)
}

// TimeTokens returns every HHhMM token of v in order.
func (p *Parser) TimeTokens(v any) []string {
	s, ok := text(v)
	if !ok {
		return nil
	}

	return p.timePattern.FindAllString(s, -1)
}
