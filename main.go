// Command dictexport exports dictionary words and translations from a
// paginated, logged-in listing into JSON, text, Markdown or PDF files.
package main

import "github.com/gaurav-prasanna/dictexport/cmd"

func main() {
	cmd.Execute()
}
