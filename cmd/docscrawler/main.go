// Command docscrawler crawls a seed URL's documentation into Markdown.
package main

import cmd "github.com/rohmanhakim/docscrawler/internal/cli"

func main() {
	cmd.Execute()
}
