/*
Package editor contains the application model of the rack editor.

The central type is Graph, the patch being edited: the module instances and
the wires between them. The Graph enforces the rules of patching: a wire always
goes from an output to an input of another module, an input takes at most one
wire and removing a module removes its wires first.

The GUI never edits the Graph directly while the user drags things around.
Instead, it pushes pointer Events to the Controller, a state machine that
decides what the drag means: moving a module, pulling a wire or turning a knob.
Each frame, the GUI calls Update to handle the queued events and Draw to get
the drawing instructions of the frame.

App ties everything together and is built once in main. It owns the Graph and
the Controller, saves and loads patches and keeps the Player, which runs the
module engines on the audio goroutine, in sync with the Graph through the
Broker. Engines of removed modules are destroyed only after the Player has
released them.

Patches are saved as YAML or JSON documents (rack.Patch). Serialize and
Deserialize convert between a Graph and a document; Encode and Decode between
a document and bytes.
*/
package editor
