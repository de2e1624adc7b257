// Package session keeps the chatbots of concurrent web conversations.
//
// Every Session owns one engine.Chatbot with its private script copy and
// serializes the turns sent to it. The Store is bounded: when it is full the
// least recently used session is evicted. Sessions live in process memory
// only and are lost on restart.
package session
