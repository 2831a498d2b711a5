/*
Control sequences are used to do things like move the cursor, change text
color, clear parts of the line, and more. They are the only way a program
can talk to its terminal: everything arrives interleaved with the text on
the same byte stream, so sequences must be recognized and stripped before
the text can be reconstructed.

Most sequences begin with an escape character (0x1B), so control
sequences are sometimes referred to as escape codes or escape sequences.

This module recognizes:

  - Control Characters (CR, LF, HT, BS)
  - Escape Sequences (two-byte ESC forms; only DECSC/DECRC are acted on)
  - CSI Sequences ("Control Sequence Introducer")
  - OSC-style strings (ESC ] P ^ _): consumed and discarded

PM and APC payloads fall under the OSC-style rule. DCS is treated
the same way: the payload is skipped, never interpreted. SOS (ESC X) is
not recognized: its ESC is skipped alone and the payload scans as text.
*/
package sequences
