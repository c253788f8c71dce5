package sms

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/NgigiN/smscampaign/internal/ledger"
)

var ErrUnrecognised = errors.New("not a recognised alert")

// Alert is what could be read back from an alert text.
type Alert struct {
	Name     string
	Bank     string
	Amount   float64
	Type     ledger.Type
	UserType string
}

func (a Alert) Draft() ledger.Draft {
	return ledger.Draft{
		Name:     a.Name,
		Bank:     a.Bank,
		Amount:   a.Amount,
		Type:     a.Type,
		UserType: a.UserType,
	}
}

// Money is digits with optional thousands separators and fraction.
const money = `\d[\d,]*(?:\.\d+)?`

var captures = map[string]string{
	"name":   `.+?`,
	"bank":   `.+?`,
	"amount": money,
	"type":   `debited|credited`,
}

// compile turns a template into an anchored pattern with one named group
// per placeholder. Templates missing any placeholder cannot be read back.
func compile(template string) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(strings.TrimSpace(template))
	for name, capture := range captures {
		token := regexp.QuoteMeta("{" + name + "}")
		if !strings.Contains(pattern, token) {
			return nil, fmt.Errorf("template has no {%s}", name)
		}
		pattern = strings.Replace(pattern, token, "(?P<"+name+">"+capture+")", 1)
		pattern = strings.ReplaceAll(pattern, token, "(?:"+capture+")")
	}
	return regexp.Compile(`(?i)^` + pattern + `$`)
}

// Parse reads an alert text against each template in turn; the first one
// that matches wins.
func Parse(templates []string, msg string) (*Alert, error) {
	msg = strings.Join(strings.Fields(msg), " ")
	for _, template := range templates {
		re, err := compile(strings.Join(strings.Fields(template), " "))
		if err != nil {
			continue
		}
		matches := re.FindStringSubmatch(msg)
		if matches == nil {
			continue
		}

		amountStr := strings.ReplaceAll(matches[re.SubexpIndex("amount")], ",", "")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		return &Alert{
			Name:   strings.TrimSpace(matches[re.SubexpIndex("name")]),
			Bank:   strings.TrimSpace(matches[re.SubexpIndex("bank")]),
			Amount: amount,
			Type:   ledger.Type(strings.ToLower(matches[re.SubexpIndex("type")])),
		}, nil
	}
	return nil, ErrUnrecognised
}

// Block is one alert of a pasted batch with the metadata lines under it.
type Block struct {
	Message  string
	Metadata []string
}

func isMetadata(line string) bool {
	return strings.HasPrefix(line, "u:") || strings.HasPrefix(line, "User:")
}

// SplitBatch groups lines into alerts. Every non-metadata line starts a new
// alert; metadata lines attach to the alert above them.
func SplitBatch(lines []string) []Block {
	var blocks []Block
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isMetadata(line) {
			if len(blocks) > 0 {
				last := &blocks[len(blocks)-1]
				last.Metadata = append(last.Metadata, line)
			}
			continue
		}
		blocks = append(blocks, Block{Message: line})
	}
	return blocks
}

// ParseMetadata returns the user type given under an alert, if any.
func ParseMetadata(lines []string) (userType string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "User:"); ok {
			userType = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, "u:"); ok {
			userType = strings.TrimSpace(v)
		}
	}
	return userType
}
