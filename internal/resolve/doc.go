// Package resolve loads CML documents and links them into a model.Set.
//
// Documents are addressed by canonical URI and read through an afs.Service,
// so local files and any other afs storage work alike. LoadClosure follows
// import statements breadth first, fetching the documents of one level
// concurrently; every document is loaded once. Link then binds every name
// reference, failing with diagnostic.LinkErrors for names that do not
// resolve.
package resolve
