package debate

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 60

func printBanner(w io.Writer, topic string) {
	fmt.Fprintf(w, "[AI roundtable] Topic: %s\n\n", topic)
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

func printTurn(w io.Writer, speaker, reply string) {
	fmt.Fprintf(w, "\n[%s]:\n%s\n", speaker, reply)
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}
