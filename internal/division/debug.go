package division

// debugDivision enables internal consistency panics in the per-digit hot
// path. It is compiled out in normal builds; flip it to true when working
// on the state machine itself.
const debugDivision = false
