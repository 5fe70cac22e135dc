package telegram

import "strings"

// MaxMessageLength is the Telegram limit for one text message
const MaxMessageLength = 4096

// splitMessage splits text on line boundaries into parts that fit one message
func splitMessage(text string) []string {
	if len(text) <= MaxMessageLength {
		return []string{text}
	}

	var parts []string
	lines := strings.Split(text, "\n")
	currentPart := strings.Builder{}
	currentLength := 0

	for _, line := range lines {
		lineLength := len(line) + 1

		if currentLength+lineLength > MaxMessageLength {
			if currentPart.Len() > 0 {
				parts = append(parts, currentPart.String())
				currentPart.Reset()
				currentLength = 0
			}

			if lineLength > MaxMessageLength {
				parts = append(parts, splitLongLine(line)...)
				continue
			}
		}

		if currentPart.Len() > 0 {
			currentPart.WriteString("\n")
			currentLength++
		}
		currentPart.WriteString(line)
		currentLength += len(line)
	}

	if currentPart.Len() > 0 {
		parts = append(parts, currentPart.String())
	}

	return parts
}

// splitLongLine splits a single line on spaces, never inside a UTF-8 sequence
func splitLongLine(line string) []string {
	if len(line) <= MaxMessageLength {
		return []string{line}
	}

	var parts []string
	start := 0

	for start < len(line) {
		end := start + MaxMessageLength
		if end > len(line) {
			end = len(line)
		}

		if end < len(line) {
			if lastSpace := strings.LastIndex(line[start:end], " "); lastSpace > 0 {
				end = start + lastSpace
			} else {
				for end > start && !isRuneStart(line[end]) {
					end--
				}
			}
		}

		parts = append(parts, line[start:end])
		start = end

		for start < len(line) && line[start] == ' ' {
			start++
		}
	}

	return parts
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
