// Command eliza chats with script-driven ELIZA chatbots in the console, lets
// several of them talk to each other, or serves them over HTTP.
//
// Usage:
//
//	eliza                      chat with the DOCTOR script
//	eliza blank ./my.yaml      let two identities talk to each other
//	eliza --demo               Eliza and a patient
//	eliza --example 5          print the first rounds of the example
//	eliza serve --addr :8080   web chat, REST API and /metrics
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
