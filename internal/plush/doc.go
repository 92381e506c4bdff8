// Package plush generates random Plush genomes: flat sequences of
// instruction entries used to seed a Push genetic programming population.
//
// What:
//
//   - CloseSampler draws how many block closes follow an instruction from a
//     discrete probability table (by default an approximation of
//     Binomial(4, 1/16)).
//   - Generator.Entry builds one instruction entry: an atom chosen from the
//     pool plus the requested epigenetic markers and a fresh uuid.
//   - Generator.Genome and Generator.RandomGenome build whole genomes of a
//     fixed or a bounded random length.
//   - Generator.RandomProgram hands a bounded random genome to an external
//     Assembler that turns it into a program tree.
//   - Population builds many genomes in parallel, reproducibly.
//
// Randomness:
//
// Every draw goes through the random.Source passed by the caller. For a
// fixed seed the same configuration yields the same genomes except for
// uuids. A Source is not safe for concurrent use; give each worker its own.
//
// Errors:
//
//   - errors.CodeInvalidArgument: bad sizes, probability tables, markers or
//     an empty atom pool.
//   - errors.CodeMalformedGenerator: an atom generator that fails or does
//     not produce a concrete atom within MaxAtomResolveDepth calls.
package plush
