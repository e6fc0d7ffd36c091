// Command pib-scraper scrapes English press releases from the Press
// Information Bureau and publishes them as static JSON artifacts.
package main

import "github.com/upsc-samachar/pib-scraper/cmd"

func main() {
	cmd.Execute()
}
