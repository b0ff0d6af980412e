// Command levelctl inspects and manages saved levels outside the editor.
package main

func main() {
	Execute()
}
