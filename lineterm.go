/*
Package lineterm reconstructs finalized terminal lines from a stream of
mixed text and ANSI control sequences, as produced by a child process
on a pty. Carriage-return overwrites, intra-line cursor motion, erasure
and SGR styling are replayed against a single-line cell model, and each
logically complete line is emitted as a minimal ANSI string suitable
for logging, prefixing, or a non-interactive viewer.

The Transformer is the entry point: it implements io.Writer, drives the
cell terminal in terminal/, and delegates flush timing to a pluggable
Strategy. Immediate emits strictly on newlines; FixedTimeout adds a
quiet-window timer for partial lines; StatefulTimeout shortens that
window for lines under active rewrite (progress bars) and lengthens it
for plain text.

	transform := lineterm.New(lineterm.Options{
		Strategy: lineterm.NewStatefulTimeout(0, 0),
	})
	transform.SetLineCallback(func(line string) {
		fmt.Printf("[build] %s\n", line)
	})
	defer transform.Close()
	io.Copy(transform, ptmx)

Sequences the single-line model cannot express (vertical motion,
scroll regions, full-screen erase, OSC payloads) are recognized and
dropped, never errors.
*/
package lineterm
